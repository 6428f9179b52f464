// Package audio turns runner cues into short synthesized sound effects.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects the oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// Note is one segment of a cue: a frequency sweep from From to To Hz.
type Note struct {
	From, To float64
	Dur      time.Duration
	Wave     Wave
	Gain     float64
}

// Tone streams a single Note with a short attack and exponential release.
type Tone struct {
	sr    beep.SampleRate
	note  Note
	total int
	pos   int
	phase float64
}

// NewTone creates a streamer for n at the given sample rate.
func NewTone(sr beep.SampleRate, n Note) *Tone {
	return &Tone{sr: sr, note: n, total: sr.N(n.Dur)}
}

func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.note.From + (g.note.To-g.note.From)*progress
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		env := math.Min(float64(g.pos)/attack, 1) * math.Exp(-3*progress)
		s := g.note.Gain * env * shape(g.note.Wave, g.phase)

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Tone) Err() error {
	return nil
}

// shape evaluates one period of the wave at phase in [0,1).
func shape(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Sequence chains notes into a single streamer.
func Sequence(sr beep.SampleRate, notes []Note) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streamers[i] = NewTone(sr, n)
	}
	return beep.Seq(streamers...)
}
