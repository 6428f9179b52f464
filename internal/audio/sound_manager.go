package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/candy-run/internal/runner"
)

const sampleRate = beep.SampleRate(44100)

// Recipe returns the notes played for a cue.
func Recipe(c runner.Cue) []Note {
	switch c {
	case runner.CueJump:
		return []Note{{From: 420, To: 760, Dur: 90 * time.Millisecond, Wave: WaveSquare, Gain: 0.12}}
	case runner.CueDoubleJump:
		return []Note{
			{From: 520, To: 880, Dur: 70 * time.Millisecond, Wave: WaveSquare, Gain: 0.12},
			{From: 880, To: 1180, Dur: 70 * time.Millisecond, Wave: WaveSquare, Gain: 0.10},
		}
	case runner.CueCandy:
		return []Note{
			{From: 1320, To: 1320, Dur: 50 * time.Millisecond, Wave: WaveTriangle, Gain: 0.18},
			{From: 1760, To: 1760, Dur: 80 * time.Millisecond, Wave: WaveTriangle, Gain: 0.18},
		}
	case runner.CueHit:
		return []Note{{From: 220, To: 90, Dur: 180 * time.Millisecond, Wave: WaveSquare, Gain: 0.2}}
	case runner.CueSpeedUp:
		return []Note{
			{From: 523, To: 523, Dur: 90 * time.Millisecond, Wave: WaveSine, Gain: 0.2},
			{From: 659, To: 659, Dur: 90 * time.Millisecond, Wave: WaveSine, Gain: 0.2},
			{From: 784, To: 784, Dur: 160 * time.Millisecond, Wave: WaveSine, Gain: 0.2},
		}
	case runner.CueFall:
		return []Note{{From: 700, To: 120, Dur: 450 * time.Millisecond, Wave: WaveTriangle, Gain: 0.2}}
	case runner.CueGameOver:
		return []Note{
			{From: 392, To: 392, Dur: 160 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
			{From: 330, To: 330, Dur: 160 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
			{From: 262, To: 196, Dur: 320 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
		}
	}
	return nil
}

// SoundManager plays cues through the system speaker.
// Cues arriving before Initialize or after Cleanup are dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

var _ runner.CueSink = (*SoundManager)(nil)

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. Safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted silences cues without closing the speaker.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Cue queues the cue's sound. It never blocks on the audio device.
func (sm *SoundManager) Cue(c runner.Cue) {
	notes := Recipe(c)
	if len(notes) == 0 {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized || sm.muted {
		return
	}
	s := Sequence(sampleRate, notes)
	// The mixer is read by the speaker goroutine.
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
