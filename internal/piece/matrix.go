// Package piece provides tetromino geometry, templates, and colors.
package piece

import "fmt"

// Matrix is a square grid of cell values. A zero value is an empty cell;
// any other value marks an occupied cell carrying the piece's key value.
type Matrix [][]int

// Size returns the matrix dimension N for an N×N matrix.
func (m Matrix) Size() int {
	return len(m)
}

// Clone returns a deep copy sharing no rows with the original.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// Rotated returns a new matrix rotated 90 degrees clockwise:
// transpose, then reverse each row. The receiver is not modified.
// Applying Rotated four times yields a matrix equal to the original.
func (m Matrix) Rotated() Matrix {
	n := len(m)
	out := make(Matrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]int, n)
		for j := 0; j < n; j++ {
			out[i][j] = m[n-1-j][i]
		}
	}
	return out
}

// Equal reports whether two matrices have identical dimensions and cells.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Validate checks that the matrix is non-empty and square.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("matrix is empty")
	}
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("matrix is not square: row %d has %d cells, want %d", i, len(row), len(m))
		}
	}
	return nil
}
