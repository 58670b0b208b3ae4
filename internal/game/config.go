package game

import (
	"time"

	"github.com/samdwyer/blockfall/internal/board"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible piece
	// sequences. A seed of 0 means a time-based seed will be used.
	Seed int64

	// Rows and Cols are the playfield dimensions.
	Rows int
	Cols int

	// TickInterval is the gravity period: how often the active shape
	// falls one row on its own.
	TickInterval time.Duration

	// Audio enables synthesized sound effects.
	Audio bool
}

// DefaultConfig returns the standard 20x10 playfield with a half-second
// gravity tick.
func DefaultConfig() Config {
	return Config{
		Rows:         board.DefaultRows,
		Cols:         board.DefaultCols,
		TickInterval: 500 * time.Millisecond,
		Audio:        true,
	}
}
