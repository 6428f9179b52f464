package runner

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{61000, "01:01"},
		{125500, "02:05"},
		{-5, "00:00"},
	}
	for _, tc := range tests {
		if got := FormatClock(tc.ms); got != tc.want {
			t.Errorf("FormatClock(%v) = %q, expected %q", tc.ms, got, tc.want)
		}
	}
}

func TestFrameReflectsState(t *testing.T) {
	cfg := quietConfig()
	p := Progression{MaxHearts: 4, CandyScoreLevel: 2, HardMode: true, Appearance: Appearance{Hat: "crown"}}
	h := newHarness(t, cfg, p)
	x := h.s.Runner().X

	h.s.reg.Add(pitAt(cfg, 900, 120))
	h.s.reg.Add(groundObstacleAt(cfg, 1000))
	h.s.reg.Add(Object{Kind: KindCollectible, Type: TypeCandy, X: 1100, Y: 400, R: 25, Variant: 7})
	h.tick()

	f := h.s.Frame()
	if f.Stage != 1 || f.Hearts != 4 || f.MaxHearts != 4 || !f.HardMode {
		t.Errorf("hud = stage %d hearts %d/%d hard %v", f.Stage, f.Hearts, f.MaxHearts, f.HardMode)
	}
	if len(f.Pits) != 1 || len(f.Sprites) != 2 {
		t.Fatalf("pits=%d sprites=%d, expected 1 and 2", len(f.Pits), len(f.Sprites))
	}
	if f.Sprites[1].Variant != 7 || f.Sprites[1].Kind != KindCollectible {
		t.Errorf("candy sprite = %+v", f.Sprites[1])
	}
	if f.Appearance.Hat != "crown" {
		t.Errorf("appearance not carried: %+v", f.Appearance)
	}
	if f.Pose != PoseRun || f.Player.CX != x {
		t.Errorf("pose=%v player=%+v", f.Pose, f.Player)
	}
	if feet := f.Player.Bottom(); feet != f.GroundY {
		t.Errorf("player feet at %v, expected ground %v", feet, f.GroundY)
	}

	// Frame is read-only.
	before := h.s.Clock()
	_ = h.s.Frame()
	if h.s.Clock() != before {
		t.Error("Frame mutated the clock")
	}

	h.s.SetPaused(true)
	if !h.s.Frame().Paused {
		t.Error("paused flag missing")
	}
}

func TestFrameBackgroundTierCaps(t *testing.T) {
	cfg := quietConfig()
	cfg.Difficulty.StageDurationMs = 16
	h := newHarness(t, cfg, DefaultProgression())
	h.ticks(30)
	f := h.s.Frame()
	if f.BgTier != MaxBackgroundTier {
		t.Errorf("BgTier = %d, expected %d", f.BgTier, MaxBackgroundTier)
	}
	if f.Stage <= MaxBackgroundTier {
		t.Errorf("Stage = %d, expected beyond tier cap", f.Stage)
	}
}
