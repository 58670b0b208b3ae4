package piece

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Def defines a piece type loaded from JSON: the canonical unrotated
// template matrix, the value its cells carry on the board, and the
// display color.
type Def struct {
	Key   string `json:"key"`   // Unique identifier (e.g., "I")
	Value int    `json:"value"` // Non-zero cell value used on the board grid
	Color string `json:"color"` // Hex display color (e.g., "#0000ff")
	Cells Matrix `json:"cells"` // Template matrix in default orientation

	color colorful.Color // Parsed from Color during validation
}

// DisplayColor returns the parsed display color.
func (d *Def) DisplayColor() colorful.Color {
	return d.color
}

// validate checks the definition is well formed and parses its color.
func (d *Def) validate() error {
	if d.Key == "" {
		return fmt.Errorf("piece definition has empty key")
	}
	if d.Value <= 0 {
		return fmt.Errorf("piece %q: value must be positive, got %d", d.Key, d.Value)
	}
	if err := d.Cells.Validate(); err != nil {
		return fmt.Errorf("piece %q: %w", d.Key, err)
	}

	occupied := 0
	for _, row := range d.Cells {
		for _, v := range row {
			if v == 0 {
				continue
			}
			if v != d.Value {
				return fmt.Errorf("piece %q: cell value %d does not match declared value %d", d.Key, v, d.Value)
			}
			occupied++
		}
	}
	if occupied == 0 {
		return fmt.Errorf("piece %q: template has no occupied cells", d.Key)
	}

	c, err := colorful.Hex(d.Color)
	if err != nil {
		return fmt.Errorf("piece %q: invalid color %q: %w", d.Key, d.Color, err)
	}
	d.color = c
	return nil
}

// PiecesFile represents the structure of pieces.json.
type PiecesFile struct {
	Pieces []Def `json:"pieces"`
}

// LoadDefs loads piece definitions from the embedded pieces.json file.
func LoadDefs() ([]Def, error) {
	file, err := load[PiecesFile]("pieces.json")
	if err != nil {
		return nil, err
	}
	return file.Pieces, nil
}
