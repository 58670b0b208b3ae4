// Package audio provides synthesized sound effects. Nothing is loaded
// from disk; every effect is generated as a short shaped tone.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect identifies one of the game's sound effects.
type Effect int

const (
	EffectMove Effect = iota
	EffectRotate
	EffectLock
	EffectClear
	EffectGameOver
)

// Manager owns the speaker and mixes effect streamers into it. A Manager
// that failed to initialize, or was never initialized, plays nothing;
// callers never need to check.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a silent manager. Call Initialize to open the speaker.
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer. Safe to call more
// than once.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// Play queues an effect. No-op when the manager is not initialized.
func (m *Manager) Play(effect Effect) {
	m.mu.Lock()
	initialized := m.initialized
	m.mu.Unlock()
	if !initialized {
		return
	}

	speaker.Lock()
	m.mixer.Add(effectStreamer(effect))
	speaker.Unlock()
}

// effectStreamer builds the streamer for an effect. Pitches rise for
// positive events and fall for the game-over sting.
func effectStreamer(effect Effect) beep.Streamer {
	switch effect {
	case EffectMove:
		return tone(220, 40*time.Millisecond)
	case EffectRotate:
		return tone(330, 40*time.Millisecond)
	case EffectLock:
		return tone(165, 80*time.Millisecond)
	case EffectClear:
		return beep.Seq(
			tone(440, 70*time.Millisecond),
			tone(550, 70*time.Millisecond),
			tone(660, 100*time.Millisecond),
		)
	case EffectGameOver:
		return beep.Seq(
			tone(330, 150*time.Millisecond),
			tone(247, 150*time.Millisecond),
			tone(165, 300*time.Millisecond),
		)
	default:
		return beep.Silence(0)
	}
}
