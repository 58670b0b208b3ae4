package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blockfall/internal/audio"
	"github.com/samdwyer/blockfall/internal/board"
	"github.com/samdwyer/blockfall/internal/piece"
	"github.com/samdwyer/blockfall/internal/telemetry"
	"github.com/samdwyer/blockfall/internal/ui"
)

// Game wires the controller to the terminal and the speaker and runs
// the session. The event loop is the sole driver of controller calls,
// so board and shape state never see concurrent access.
type Game struct {
	cfg        Config
	seed       int64
	screen     *ui.Screen
	renderer   *ui.Renderer
	controller *Controller
	sounds     *audio.Manager
	running    bool
	over       bool
}

// New creates a game instance from the configuration.
func New(cfg Config) (*Game, error) {
	registry, err := piece.LoadRegistry()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	sounds := audio.NewManager()
	if cfg.Audio {
		// A failed speaker is a silent game, not a broken one.
		_ = sounds.Initialize()
	}

	return &Game{
		cfg:        cfg,
		seed:       seed,
		screen:     screen,
		renderer:   ui.NewRenderer(screen),
		controller: NewController(board.New(cfg.Rows, cfg.Cols), registry, rng),
		sounds:     sounds,
		running:    true,
	}, nil
}

// Controller returns the session controller.
func (g *Game) Controller() *Controller {
	return g.controller
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.controller.SpawnNewShape()
	initSpan.SetAttributes(
		attribute.Int("board.rows", g.cfg.Rows),
		attribute.Int("board.cols", g.cfg.Cols),
		attribute.Int64("game.seed", g.seed),
	)
	initSpan.End()

	// Gravity timer: posts tick events into the input loop so every
	// controller call happens on this goroutine.
	ticker := time.NewTicker(g.cfg.TickInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				g.screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				return
			}
		}
	}()

	for g.running {
		g.render()
		g.handleEvent(ctx)
	}

	ticker.Stop()
	close(done)
	g.Close()
	return nil
}

// render draws the current board state.
func (g *Game) render() {
	g.renderer.Render(g.controller.Board())
	if g.controller.State() == StateOver {
		g.renderer.RenderMessage(g.controller.Board(), "GAME OVER")
	}
}

// handleEvent processes a single input or timer event.
func (g *Game) handleEvent(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventInterrupt:
		g.handleTick(ctx)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyLeft:
		if g.controller.Move(DirLeft) {
			g.sounds.Play(audio.EffectMove)
		}
	case tcell.KeyRight:
		if g.controller.Move(DirRight) {
			g.sounds.Play(audio.EffectMove)
		}
	case tcell.KeyDown:
		if g.controller.Move(DirDown) {
			g.sounds.Play(audio.EffectMove)
		}
	case tcell.KeyUp:
		if g.controller.Rotate() {
			g.sounds.Play(audio.EffectRotate)
		}

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		}
	}
}

// handleTick advances gravity and plays the matching effects.
func (g *Game) handleTick(ctx context.Context) {
	res := g.controller.Tick(ctx)

	switch {
	case res.GameOver:
		if !g.over {
			g.over = true
			g.sounds.Play(audio.EffectGameOver)
		}
	case res.RowsCleared > 0:
		g.sounds.Play(audio.EffectClear)
	case res.Locked:
		g.sounds.Play(audio.EffectLock)
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
	g.sounds.Close()
}
