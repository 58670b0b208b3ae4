package board

import (
	"fmt"
	"strings"

	"github.com/samdwyer/blockfall/internal/piece"
)

const (
	// Default playfield dimensions
	DefaultRows = 20
	DefaultCols = 10
)

// Board is the fixed-size playfield grid. Rows grow downward: row 0 is
// the top. Place and Remove are the only mutators besides ClearRows, and
// they are exact inverses for the same shape at the same position.
type Board struct {
	Rows int
	Cols int
	grid [][]Cell
}

// New creates an empty board with the given dimensions.
func New(rows, cols int) *Board {
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
	}
	return &Board{
		Rows: rows,
		Cols: cols,
		grid: grid,
	}
}

// CanPlace reports whether a matrix placed with its top-left corner at
// (row, col) would have every occupied sub-cell inside the grid and on
// an empty board cell. Pure query; the grid is not touched.
func (b *Board) CanPlace(m piece.Matrix, row, col int) bool {
	for r := range m {
		for c := range m[r] {
			if m[r][c] == 0 {
				continue
			}
			boardRow := row + r
			boardCol := col + c
			if boardRow < 0 || boardRow >= b.Rows || boardCol < 0 || boardCol >= b.Cols {
				return false
			}
			if b.grid[boardRow][boardCol].Occupied() {
				return false
			}
		}
	}
	return true
}

// Place fills the board cells covered by the shape's occupied sub-cells
// with the shape's value and color. The caller must have verified
// legality with CanPlace; placing onto a cell already owned by another
// piece is grid corruption and panics.
func (b *Board) Place(s *piece.Shape) {
	for r := range s.Matrix {
		for c := range s.Matrix[r] {
			v := s.Matrix[r][c]
			if v == 0 {
				continue
			}
			boardRow := s.Row + r
			boardCol := s.Col + c
			if !b.inBounds(boardRow, boardCol) {
				continue
			}
			if cur := b.grid[boardRow][boardCol].Value; cur != 0 && cur != v {
				panic(fmt.Sprintf("board: cell (%d,%d) already holds value %d, cannot place %d", boardRow, boardCol, cur, v))
			}
			b.grid[boardRow][boardCol] = Cell{Value: v, Color: s.Color}
		}
	}
}

// Remove clears the board cells covered by the shape's occupied
// sub-cells. Inverse of Place. Clearing a cell that does not hold the
// shape's value is grid corruption and panics.
func (b *Board) Remove(s *piece.Shape) {
	for r := range s.Matrix {
		for c := range s.Matrix[r] {
			v := s.Matrix[r][c]
			if v == 0 {
				continue
			}
			boardRow := s.Row + r
			boardCol := s.Col + c
			if !b.inBounds(boardRow, boardCol) {
				continue
			}
			if cur := b.grid[boardRow][boardCol].Value; cur != v {
				panic(fmt.Sprintf("board: cell (%d,%d) holds value %d, cannot remove %d", boardRow, boardCol, cur, v))
			}
			b.grid[boardRow][boardCol] = Cell{}
		}
	}
}

// ClearRows removes every fully occupied row, shifts the rows above it
// down, and inserts a fresh empty row at the top. Scanning is bottom-up
// with the index held after a shift, so stacked full rows all collapse
// in a single call. Returns the number of rows cleared.
func (b *Board) ClearRows() int {
	cleared := 0
	row := b.Rows - 1
	for row >= 0 {
		if b.rowFull(row) {
			copy(b.grid[1:row+1], b.grid[0:row])
			b.grid[0] = make([]Cell, b.Cols)
			cleared++
		} else {
			row--
		}
	}
	return cleared
}

// Cell returns the cell at the given position, or an empty cell for
// out-of-range positions.
func (b *Board) Cell(row, col int) Cell {
	if !b.inBounds(row, col) {
		return Cell{}
	}
	return b.grid[row][col]
}

// Occupied reports whether the cell at the given position is filled.
// Out-of-range positions are not occupied.
func (b *Board) Occupied(row, col int) bool {
	return b.Cell(row, col).Occupied()
}

// String renders the grid for diagnostics: cell values for filled cells,
// '_' for empty ones, with a column header and frame.
func (b *Board) String() string {
	var sb strings.Builder

	sb.WriteString("   ")
	for c := 0; c < b.Cols; c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteByte('\n')
	sb.WriteString("  " + strings.Repeat("-", b.Cols*2) + "\n")

	for r := 0; r < b.Rows; r++ {
		fmt.Fprintf(&sb, "%-2d|", r)
		for c := 0; c < b.Cols; c++ {
			sb.WriteByte(' ')
			if cell := b.grid[r][c]; cell.Occupied() {
				fmt.Fprintf(&sb, "%d", cell.Value)
			} else {
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  " + strings.Repeat("-", b.Cols*2) + "\n")
	return sb.String()
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

func (b *Board) rowFull(row int) bool {
	for c := 0; c < b.Cols; c++ {
		if !b.grid[row][c].Occupied() {
			return false
		}
	}
	return true
}
