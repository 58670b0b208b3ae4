package piece

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Shape is one live tetromino: an immutable-size matrix plus a mutable
// board offset. Shapes are created only by copying a template definition,
// so rotating or moving one never touches the shared template.
type Shape struct {
	Key      string         // Piece type identifier ("I", "O", ...)
	Matrix   Matrix         // Occupied cells relative to the local origin
	Row, Col int            // Board offset of the matrix's top-left corner
	Color    colorful.Color // Display color from the piece definition

	rotation int // 0..3, advanced on each committed rotation
}

// NewShape creates a shape from a definition with a deep-copied matrix,
// positioned at the origin. The controller assigns the spawn offset.
func NewShape(def *Def) *Shape {
	return &Shape{
		Key:    def.Key,
		Matrix: def.Cells.Clone(),
		Color:  def.color,
	}
}

// Rotated returns the shape's matrix rotated 90 degrees clockwise without
// committing it. The caller decides whether the rotation is legal and
// commits it with SetMatrix.
func (s *Shape) Rotated() Matrix {
	return s.Matrix.Rotated()
}

// SetMatrix commits a rotated matrix and advances the rotation counter.
func (s *Shape) SetMatrix(m Matrix) {
	s.Matrix = m
	s.rotation = (s.rotation + 1) % 4
}

// Rotation returns the number of committed clockwise rotations, 0..3.
func (s *Shape) Rotation() int {
	return s.rotation
}

// String renders the matrix for diagnostics: '*' for occupied cells,
// '.' for padding.
func (s *Shape) String() string {
	var b strings.Builder
	for i, row := range s.Matrix {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			if v == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte('*')
			}
		}
	}
	return b.String()
}
