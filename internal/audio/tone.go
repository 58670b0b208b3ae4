package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// toneStreamer generates a sine wave of fixed frequency and length with
// a short linear attack and release so effects start and stop without
// clicks.
type toneStreamer struct {
	freq     float64
	phase    float64
	position int
	total    int
	ramp     int // attack/release length in samples
}

// tone creates a shaped sine tone streamer.
func tone(freq float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	ramp := sampleRate.N(5 * time.Millisecond)
	if ramp*2 > total {
		ramp = total / 2
	}
	return &toneStreamer{
		freq:  freq,
		total: total,
		ramp:  ramp,
	}
}

func (t *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * t.phase)

		// Envelope
		switch {
		case t.position < t.ramp:
			val *= float64(t.position) / float64(t.ramp)
		case t.total-t.position < t.ramp:
			val *= float64(t.total-t.position) / float64(t.ramp)
		}

		val *= 0.3 // Headroom so stacked effects do not clip
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase) // Keep in [0, 1)
		t.position++
	}
	return len(samples), true
}

func (t *toneStreamer) Err() error { return nil }
