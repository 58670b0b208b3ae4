package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/blockfall/internal/board"
)

// cellWidth is how many terminal columns one board cell occupies.
// Terminal cells are roughly twice as tall as wide, so doubling the
// width keeps the playfield square.
const cellWidth = 2

// Renderer handles drawing the playfield to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the board, centered in the terminal with a frame. The
// active shape needs no separate pass: while falling it lives on the
// board grid like locked cells do.
func (r *Renderer) Render(b *board.Board) {
	r.screen.Clear()

	xOff, yOff := r.origin(b)
	r.drawFrame(b, xOff, yOff)

	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			cell := b.Cell(row, col)
			style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
			ch := '·'
			if cell.Occupied() {
				style = tcell.StyleDefault.Foreground(toTcell(cell.Color))
				ch = '█'
			}
			x := xOff + col*cellWidth
			for i := 0; i < cellWidth; i++ {
				r.screen.SetContent(x+i, yOff+row, ch, style)
			}
		}
	}

	r.screen.Show()
}

// RenderMessage displays a message centered below the playfield.
func (r *Renderer) RenderMessage(b *board.Board, msg string) {
	xOff, yOff := r.origin(b)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	start := xOff + (b.Cols*cellWidth-len(msg))/2
	for i, ch := range msg {
		r.screen.SetContent(start+i, yOff+b.Rows+1, ch, style)
	}
	r.screen.Show()
}

// origin returns the top-left screen position of the playfield.
func (r *Renderer) origin(b *board.Board) (int, int) {
	w, h := r.screen.Size()
	xOff := (w - b.Cols*cellWidth) / 2
	yOff := (h - b.Rows) / 2
	if xOff < 1 {
		xOff = 1
	}
	if yOff < 1 {
		yOff = 1
	}
	return xOff, yOff
}

// drawFrame draws a border one cell outside the playfield.
func (r *Renderer) drawFrame(b *board.Board, xOff, yOff int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	right := xOff + b.Cols*cellWidth
	bottom := yOff + b.Rows

	for y := yOff - 1; y <= bottom; y++ {
		r.screen.SetContent(xOff-1, y, '│', style)
		r.screen.SetContent(right, y, '│', style)
	}
	for x := xOff - 1; x <= right; x++ {
		r.screen.SetContent(x, yOff-1, '─', style)
		r.screen.SetContent(x, bottom, '─', style)
	}
	r.screen.SetContent(xOff-1, yOff-1, '┌', style)
	r.screen.SetContent(right, yOff-1, '┐', style)
	r.screen.SetContent(xOff-1, bottom, '└', style)
	r.screen.SetContent(right, bottom, '┘', style)
}

// toTcell converts a piece color to a terminal color.
func toTcell(c colorful.Color) tcell.Color {
	cr, cg, cb := c.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}
