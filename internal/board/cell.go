// Package board provides the playfield grid and placement legality.
package board

import "github.com/lucasb-eyer/go-colorful"

// Cell is a single grid cell. Value is 0 for an empty cell, or the
// owning piece's key value for a filled cell; filled cells also carry
// the piece's display color.
type Cell struct {
	Value int
	Color colorful.Color
}

// Occupied reports whether the cell is filled.
func (c Cell) Occupied() bool {
	return c.Value != 0
}
