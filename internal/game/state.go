// Package game provides the main game loop and session state management.
package game

// State represents the controller's position in the piece lifecycle.
type State int

const (
	// StateEmpty means no active shape exists yet; the next tick spawns one.
	StateEmpty State = iota
	// StateActive means a shape is falling and accepts move/rotate commands.
	StateActive
	// StateLocking is the transient state while a landed shape is committed
	// and full rows are cleared, before the next spawn.
	StateLocking
	// StateOver is terminal: a spawn was blocked by locked cells.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateLocking:
		return "locking"
	case StateOver:
		return "game_over"
	default:
		return "unknown"
	}
}
