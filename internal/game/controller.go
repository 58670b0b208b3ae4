package game

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/blockfall/internal/board"
	"github.com/samdwyer/blockfall/internal/piece"
	"github.com/samdwyer/blockfall/internal/telemetry"
)

// Direction is a horizontal or downward move command.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// delta returns the (row, col) offset for one step in the direction.
func (d Direction) delta() (dr, dc int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// TickResult reports what a gravity tick did, so the caller can drive
// rendering and sound.
type TickResult struct {
	Moved       bool // The active shape fell one row
	Locked      bool // The active shape landed and was committed
	RowsCleared int  // Full rows removed after a lock
	GameOver    bool // A spawn was blocked; the session is over
}

// Controller orchestrates the board and the single active shape. It is
// the sole mutator of both; all operations are synchronous and must not
// be called concurrently or reentrantly.
type Controller struct {
	board    *board.Board
	registry *piece.Registry
	rng      *rand.Rand
	active   *piece.Shape
	state    State
}

// NewController creates a controller over an empty board. No shape is
// spawned yet; the first Tick (or an explicit SpawnNewShape) activates one.
func NewController(b *board.Board, registry *piece.Registry, rng *rand.Rand) *Controller {
	return &Controller{
		board:    b,
		registry: registry,
		rng:      rng,
		state:    StateEmpty,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Board returns the controller's playfield for read-only display queries.
func (c *Controller) Board() *board.Board {
	return c.board
}

// ActiveShape returns the falling shape, or nil between lock and spawn.
func (c *Controller) ActiveShape() *piece.Shape {
	return c.active
}

// SpawnNewShape picks a random template, deep-copies it into a new shape
// at the top-center spawn position, and places it on the board. If the
// spawn position is blocked by locked cells the session ends: the state
// becomes StateOver and false is returned.
func (c *Controller) SpawnNewShape() bool {
	if c.state == StateOver {
		return false
	}

	s := piece.NewShape(c.registry.Random(c.rng))
	s.Row = 0
	s.Col = (c.board.Cols - s.Matrix.Size()) / 2

	if !c.board.CanPlace(s.Matrix, s.Row, s.Col) {
		c.active = nil
		c.state = StateOver
		return false
	}

	c.board.Place(s)
	c.active = s
	c.state = StateActive
	return true
}

// Move attempts to shift the active shape one cell in the direction.
// The shape is lifted off the board, the candidate position is tested,
// and the shape is re-placed at whichever position won; the board never
// ends up without the piece. Returns false if the move was blocked. A
// false down-move means the shape has landed; Tick treats that as the
// lock signal.
func (c *Controller) Move(dir Direction) bool {
	if c.state != StateActive {
		return false
	}

	dr, dc := dir.delta()
	s := c.active
	c.board.Remove(s)
	if c.board.CanPlace(s.Matrix, s.Row+dr, s.Col+dc) {
		s.Row += dr
		s.Col += dc
		c.board.Place(s)
		return true
	}
	c.board.Place(s)
	return false
}

// Rotate attempts to turn the active shape 90 degrees clockwise at its
// current offset. No kick positions are tried: if the rotated matrix
// does not fit, the original matrix is kept and false is returned.
func (c *Controller) Rotate() bool {
	if c.state != StateActive {
		return false
	}

	s := c.active
	rotated := s.Rotated()
	c.board.Remove(s)
	if c.board.CanPlace(rotated, s.Row, s.Col) {
		s.SetMatrix(rotated)
		c.board.Place(s)
		return true
	}
	c.board.Place(s)
	return false
}

// Tick advances the session by one gravity step. An active shape falls
// one row; if it cannot, it locks where it sits, full rows are cleared,
// and the next shape spawns. In StateEmpty the first shape spawns; in
// StateOver nothing happens.
func (c *Controller) Tick(ctx context.Context) TickResult {
	switch c.state {
	case StateOver:
		return TickResult{GameOver: true}
	case StateEmpty:
		ok := c.SpawnNewShape()
		return TickResult{GameOver: !ok}
	}

	if c.Move(DirDown) {
		return TickResult{Moved: true}
	}

	// The failed down-move left the shape re-placed at its resting
	// position; committing it is just dropping our handle to it.
	c.state = StateLocking
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.lock")

	locked := c.active
	c.active = nil
	cleared := c.board.ClearRows()
	c.SpawnNewShape()

	span.SetAttributes(
		attribute.String("piece.key", locked.Key),
		attribute.Int("piece.final_row", locked.Row),
		attribute.Int("board.rows_cleared", cleared),
		attribute.String("game.state", c.state.String()),
	)
	span.End()

	return TickResult{
		Locked:      true,
		RowsCleared: cleared,
		GameOver:    c.state == StateOver,
	}
}
