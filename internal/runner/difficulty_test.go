package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/candy-run/internal/config"
)

func TestProgressorAdvance(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Difficulty
	p := NewProgressor(cfg, false)
	c := newClock()

	c.ElapsedMs = 11999
	if p.Advance(&c) {
		t.Error("no stage should be crossed before 12s")
	}

	c.ElapsedMs = 12000
	if !p.Advance(&c) || c.Stage != 1 {
		t.Fatalf("stage = %d, expected 1", c.Stage)
	}
	if math.Abs(c.SpeedMultiplier-1.12) > 1e-9 || math.Abs(c.DensityMultiplier-1.12) > 1e-9 {
		t.Errorf("multipliers = %v/%v, expected 1.12", c.SpeedMultiplier, c.DensityMultiplier)
	}
	if c.BannerUntil != 12000+cfg.SpeedUpBannerMs {
		t.Errorf("BannerUntil = %v", c.BannerUntil)
	}

	// Skipping several stages at once still steps once per stage.
	c.ElapsedMs = 48000
	p.Advance(&c)
	if c.Stage != 4 || math.Abs(c.SpeedMultiplier-1.48) > 1e-9 {
		t.Errorf("stage=%d speed=%v, expected 4 and 1.48", c.Stage, c.SpeedMultiplier)
	}
}

func TestScrollSpeedAt(t *testing.T) {
	rc := config.DefaultRunnerConfig()
	p := NewProgressor(rc.Difficulty, false)
	c := newClock()
	c.ElapsedMs = 11000

	now := p.ScrollSpeed(c, rc.Scroll, 0)
	if got := p.ScrollSpeedAt(c, rc.Scroll, 0, 11500); got != now {
		t.Errorf("same stage: %v, expected %v", got, now)
	}
	want := rc.Scroll.BaseSpeed * (1 + 2*rc.Difficulty.SpeedStep)
	if got := p.ScrollSpeedAt(c, rc.Scroll, 0, 25000); math.Abs(got-want) > 1e-12 {
		t.Errorf("two stages ahead: %v, expected %v", got, want)
	}
	if c.Stage != 0 || c.SpeedMultiplier != 1 {
		t.Error("lookahead must not move the clock")
	}
}

func TestProgressorFixedAndHard(t *testing.T) {
	rc := config.DefaultRunnerConfig()
	config.ApplyPreset(&rc, config.DifficultyFixed)
	p := NewProgressor(rc.Difficulty, false)
	c := newClock()
	c.ElapsedMs = 600000
	if p.Advance(&c) || c.SpeedMultiplier != 1 || c.DensityMultiplier != 1 {
		t.Errorf("fixed preset advanced: %+v", c)
	}

	normal := NewProgressor(config.DefaultRunnerConfig().Difficulty, false)
	hard := NewProgressor(config.DefaultRunnerConfig().Difficulty, true)
	base := newClock()
	ns := normal.ScrollSpeed(base, rc.Scroll, 2)
	hs := hard.ScrollSpeed(base, rc.Scroll, 2)
	if math.Abs(hs-ns*1.5) > 1e-12 {
		t.Errorf("hard speed %v, expected 1.5x %v", hs, ns)
	}
	if hard.Density(base) != 1.5 || normal.Density(base) != 1.0 {
		t.Errorf("density normal=%v hard=%v", normal.Density(base), hard.Density(base))
	}
	if want := rc.Scroll.BaseSpeed + 2*rc.Scroll.LevelBonus; math.Abs(ns-want) > 1e-12 {
		t.Errorf("normal speed = %v, expected %v", ns, want)
	}
}

func TestSpeedUpCueInSession(t *testing.T) {
	cfg := quietConfig()
	cfg.Difficulty.StageDurationMs = 320
	h := newHarness(t, cfg, DefaultProgression())

	h.ticks(25) // 400ms
	if h.s.Clock().Stage != 1 {
		t.Fatalf("stage = %d, expected 1", h.s.Clock().Stage)
	}
	if h.cues.count(CueSpeedUp) != 1 {
		t.Errorf("speed-up cues = %d, expected 1", h.cues.count(CueSpeedUp))
	}
	if !h.s.Frame().SpeedUp {
		t.Error("banner should be visible right after a stage change")
	}
}
