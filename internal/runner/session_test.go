package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/candy-run/internal/config"
)

func TestScoreFormula(t *testing.T) {
	tests := []struct {
		name              string
		candies, jumps    int
		level, bonus, out int
	}{
		{"reference literal", 5, 10, 3, 2, 35},
		{"no jump bonus", 7, 40, 2, 0, 14},
		{"nothing collected", 0, 0, 5, 10, 0},
		{"jumps only", 0, 12, 1, 3, 36},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(Tally{Candies: tc.candies, Jumps: tc.jumps}, tc.level, tc.bonus)
			if got != tc.out {
				t.Errorf("Score() = %d, expected %d", got, tc.out)
			}
		})
	}
}

func TestThreeHitsEndRunByCollision(t *testing.T) {
	cfg := quietConfig()
	h := newHarness(t, cfg, Progression{MaxHearts: 3, CandyScoreLevel: 1})
	runnerX := h.s.Runner().X

	for hit := 1; hit <= 3; hit++ {
		// Wait out any invulnerability from the previous hit on an empty track.
		h.s.reg.Reset()
		h.tickUntil(func() bool { return !h.s.Runner().Invulnerable(h.s.Clock().ElapsedMs) }, 200)

		h.s.reg.Add(groundObstacleAt(cfg, runnerX))
		h.tick()

		if got := h.s.Runner().Hearts; got != 3-hit {
			t.Fatalf("after hit %d: hearts = %d, expected %d", hit, got, 3-hit)
		}
		if hit < 3 {
			if h.s.Outcome().Terminal() || len(h.sink.gameOvers) != 0 {
				t.Fatalf("run ended early on hit %d", hit)
			}
		}
	}

	if h.s.Outcome() != OutcomeCollision {
		t.Fatalf("Outcome = %v, expected collision", h.s.Outcome())
	}
	if len(h.sink.gameOvers) != 1 {
		t.Fatalf("OnGameOver fired %d times, expected 1", len(h.sink.gameOvers))
	}
	if h.sink.gameOvers[0].fell {
		t.Error("collision game over must report fellInPit=false")
	}
}

func TestPitFallIgnoresHearts(t *testing.T) {
	cfg := quietConfig()
	h := newHarness(t, cfg, Progression{MaxHearts: 3, CandyScoreLevel: 1})
	r := h.s.Runner()

	h.s.reg.Add(pitAt(cfg, r.X, 200))
	h.tick()
	if !h.s.Runner().Plunging || h.s.Runner().Grounded {
		t.Fatal("runner over a pit should start plunging")
	}

	// Jumps are not honored once plunging.
	jumps := h.s.Tally().Jumps
	h.s.Jump()
	if h.s.Tally().Jumps != jumps || h.s.Runner().VY < 0 {
		t.Error("jump must be ignored while plunging")
	}

	h.tickUntil(func() bool { return h.s.Outcome().Terminal() }, 100)

	if h.s.Outcome() != OutcomeFell {
		t.Fatalf("Outcome = %v, expected fell", h.s.Outcome())
	}
	if got := h.s.Runner().Hearts; got != 3 {
		t.Errorf("hearts = %d, expected 3 (fall ignores hearts)", got)
	}
	if len(h.sink.gameOvers) != 1 || !h.sink.gameOvers[0].fell {
		t.Errorf("gameOvers = %+v, expected one fall", h.sink.gameOvers)
	}
	if h.s.Runner().Y <= cfg.World.Height {
		t.Errorf("fall fired before leaving the screen: y=%v", h.s.Runner().Y)
	}
	if h.cues.count(CueFall) != 1 || h.cues.count(CueGameOver) != 1 {
		t.Errorf("cues = %v", h.cues.cues)
	}
}

func TestJumpOverPit(t *testing.T) {
	cfg := quietConfig()
	h := newHarness(t, cfg, DefaultProgression())
	x := h.s.Runner().X

	// Leading edge just ahead of the runner.
	h.s.reg.Add(pitAt(cfg, x+60, 100))
	h.s.Jump()
	h.tick()
	h.tickUntil(func() bool { return h.s.Runner().Grounded }, 200)

	r := h.s.Runner()
	if r.Plunging || h.s.Outcome().Terminal() {
		t.Fatalf("runner should clear the pit: %+v outcome=%v", r, h.s.Outcome())
	}
}

func TestInvulnerabilityWindow(t *testing.T) {
	cfg := quietConfig()
	h := newHarness(t, cfg, Progression{MaxHearts: 3, CandyScoreLevel: 1})
	x := h.s.Runner().X

	h.s.reg.Add(groundObstacleAt(cfg, x))
	h.tick()
	if h.s.Runner().Hearts != 2 {
		t.Fatalf("hearts = %d, expected 2 after first hit", h.s.Runner().Hearts)
	}
	until := h.s.Runner().InvulnerableUntil
	if !almostEqual(until, h.s.Clock().ElapsedMs+cfg.Hearts.InvulnerabilityMs) {
		t.Fatalf("InvulnerableUntil = %v", until)
	}
	if !h.s.Frame().Hurt {
		t.Error("frame should report hurt during invulnerability")
	}

	// Several overlapping obstacles every tick inside the window.
	for h.s.Clock().ElapsedMs+tickMs < until {
		h.s.reg.Reset()
		h.s.reg.Add(groundObstacleAt(cfg, x))
		h.s.reg.Add(groundObstacleAt(cfg, x+10))
		h.s.reg.Add(airObstacleAt(cfg, x, cfg.Obstacles.AirTiers[0]))
		h.tick()
		if got := h.s.Runner().Hearts; got != 2 {
			t.Fatalf("heart lost inside window at %vms: hearts=%d", h.s.Clock().ElapsedMs, got)
		}
	}

	// The first overlap after the window costs exactly one heart.
	for range 5 {
		h.s.reg.Reset()
		h.s.reg.Add(groundObstacleAt(cfg, x))
		h.s.reg.Add(groundObstacleAt(cfg, x+10))
		h.tick()
		if h.s.Runner().Hearts < 2 {
			break
		}
	}
	if got := h.s.Runner().Hearts; got != 1 {
		t.Errorf("hearts = %d, expected 1 after window expired", got)
	}
	if h.s.Clock().ElapsedMs < until {
		t.Errorf("heart lost at %v before window end %v", h.s.Clock().ElapsedMs, until)
	}
}

func TestInstantDeathVariant(t *testing.T) {
	cfg := quietConfig()
	cfg.Hearts.InvulnerabilityMs = 0
	h := newHarness(t, cfg, Progression{MaxHearts: 1, CandyScoreLevel: 1})

	h.s.reg.Add(groundObstacleAt(cfg, h.s.Runner().X))
	h.tick()
	if h.s.Outcome() != OutcomeCollision || len(h.sink.gameOvers) != 1 {
		t.Errorf("single heart run should end on first hit, outcome=%v", h.s.Outcome())
	}
}

func TestGameOverIsAbsorbing(t *testing.T) {
	cfg := quietConfig()
	h := newHarness(t, cfg, Progression{MaxHearts: 1, CandyScoreLevel: 2, JumpBonusLevel: 1})
	h.s.Jump()
	h.tickUntil(func() bool { return h.s.Runner().Grounded }, 200)

	h.s.reg.Add(groundObstacleAt(cfg, h.s.Runner().X))
	h.tick()
	if !h.s.Outcome().Terminal() {
		t.Fatal("expected terminal state")
	}

	runner := h.s.Runner()
	clock := h.s.Clock()
	tally := h.s.Tally()

	h.s.Jump()
	h.s.SetSlide(true)
	h.s.SetPaused(true)
	h.s.SetPaused(false)
	h.ticks(100)

	if h.s.Runner() != runner || h.s.Clock() != clock || h.s.Tally() != tally {
		t.Error("state changed after game over")
	}
	if len(h.sink.gameOvers) != 1 {
		t.Fatalf("OnGameOver fired %d times, expected 1", len(h.sink.gameOvers))
	}
	got := h.sink.gameOvers[0]
	if got.score != 1 || got.candies != 0 {
		t.Errorf("game over = %+v, expected score 1", got)
	}
}

func TestCandyPickup(t *testing.T) {
	cfg := quietConfig()
	h := newHarness(t, cfg, Progression{MaxHearts: 3, CandyScoreLevel: 4})
	px, py := PickupPoint(h.s.Runner(), cfg.Player)

	h.s.reg.Add(Object{Kind: KindCollectible, Type: TypeCandy, X: px + 5, Y: py, R: cfg.Collectibles.Radius})
	h.s.reg.Add(Object{Kind: KindCollectible, Type: TypeCandy, X: px + 400, Y: py, R: cfg.Collectibles.Radius})
	h.tick()

	if got := h.s.Tally().Candies; got != 1 {
		t.Fatalf("Candies = %d, expected 1", got)
	}
	if len(h.sink.added) != 1 || h.sink.added[0] != 1 {
		t.Errorf("OnAddScore calls = %v, expected [1]", h.sink.added)
	}
	if got := len(h.s.Objects()); got != 1 {
		t.Errorf("live objects = %d, expected 1 (picked candy removed)", got)
	}
	if h.s.Score() != 4 {
		t.Errorf("Score() = %d, expected 4", h.s.Score())
	}
	if h.cues.count(CueCandy) != 1 {
		t.Errorf("cues = %v", h.cues.cues)
	}
}

func TestSlideAvoidsLowAirborne(t *testing.T) {
	cfg := quietConfig()
	low := cfg.Obstacles.AirTiers[0]

	tests := []struct {
		name    string
		slide   bool
		wantHit bool
	}{
		{"running into low bird", false, true},
		{"sliding under low bird", true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, cfg, DefaultProgression())
			h.s.SetSlide(tc.slide)
			h.s.reg.Add(airObstacleAt(cfg, h.s.Runner().X, low))
			h.tick()
			hit := h.s.Runner().Hearts < 3
			if hit != tc.wantHit {
				t.Errorf("hit = %v, expected %v", hit, tc.wantHit)
			}
		})
	}
}

func TestTickClock(t *testing.T) {
	cfg := quietConfig()
	s := NewSession(cfg, 1, nil)

	// Before Start nothing happens.
	s.Tick(100)
	if s.Clock().ElapsedMs != 0 {
		t.Fatal("Tick before Start should be ignored")
	}

	s.Start(DefaultProgression())
	s.Tick(1000) // baseline
	if s.Clock().ElapsedMs != 0 {
		t.Errorf("first tick should only baseline, elapsed=%v", s.Clock().ElapsedMs)
	}

	s.Tick(11000) // stalled frame
	if got := s.Clock().ElapsedMs; got != cfg.Physics.MaxStepMs {
		t.Errorf("elapsed = %v, expected clamp to %v", got, cfg.Physics.MaxStepMs)
	}

	s.Tick(10500) // clock went backwards
	if got := s.Clock().ElapsedMs; got != cfg.Physics.MaxStepMs {
		t.Errorf("negative dt should not advance time, elapsed=%v", got)
	}

	s.SetPaused(true)
	s.Tick(10520)
	s.Tick(30000)
	if got := s.Clock().ElapsedMs; got != cfg.Physics.MaxStepMs {
		t.Errorf("paused session advanced: elapsed=%v", got)
	}
	s.Jump()
	if s.Tally().Jumps != 0 {
		t.Error("jump while paused should be ignored")
	}

	s.SetPaused(false)
	s.Tick(90000) // re-baseline after resume
	s.Tick(90016)
	if got := s.Clock().ElapsedMs; !almostEqual(got, cfg.Physics.MaxStepMs+16) {
		t.Errorf("elapsed after resume = %v, expected %v", got, cfg.Physics.MaxStepMs+16)
	}
}

func TestSessionInvariantsUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		cfg := config.DefaultRunnerConfig()
		sink := &recordingSink{}
		s := NewSession(cfg, seed, sink)
		s.Start(Progression{MaxHearts: 5, CandyScoreLevel: 2, JumpBonusLevel: 1, HardMode: seed%2 == 0, CandyVariant: -1})

		input := rand.New(rand.NewSource(seed * 7919))
		now := 0.0
		prev := s.Clock()
		prevHearts := s.Runner().Hearts

		for i := 0; i < 20000 && !s.Outcome().Terminal(); i++ {
			if input.Float64() < 0.04 {
				s.Jump()
			}
			if input.Float64() < 0.02 {
				s.SetSlide(input.Intn(2) == 0)
			}
			now += 5 + input.Float64()*80
			s.Tick(now)

			r := s.Runner()
			c := s.Clock()
			if r.Hearts < 0 || r.Hearts > r.MaxHearts {
				t.Fatalf("seed %d: hearts %d out of [0,%d]", seed, r.Hearts, r.MaxHearts)
			}
			if r.Hearts > prevHearts {
				t.Fatalf("seed %d: hearts increased %d -> %d", seed, prevHearts, r.Hearts)
			}
			if r.Grounded && (r.VY != 0 || r.AirJumps != 0) {
				t.Fatalf("seed %d: grounded with vy=%v airJumps=%d", seed, r.VY, r.AirJumps)
			}
			if r.Plunging && r.Grounded {
				t.Fatalf("seed %d: plunging runner grounded", seed)
			}
			if c.SpeedMultiplier < prev.SpeedMultiplier || c.DensityMultiplier < prev.DensityMultiplier {
				t.Fatalf("seed %d: multipliers decreased", seed)
			}
			if c.SpeedMultiplier < 1 || c.DensityMultiplier < 1 {
				t.Fatalf("seed %d: multipliers below 1", seed)
			}
			if c.Distance < prev.Distance || c.Stage < prev.Stage || c.ElapsedMs < prev.ElapsedMs {
				t.Fatalf("seed %d: clock went backwards", seed)
			}
			if len(sink.gameOvers) > 1 {
				t.Fatalf("seed %d: OnGameOver fired %d times", seed, len(sink.gameOvers))
			}
			prev = c
			prevHearts = r.Hearts
		}

		if len(sink.added) != s.Tally().Candies {
			t.Errorf("seed %d: OnAddScore calls %d != candies %d", seed, len(sink.added), s.Tally().Candies)
		}
		if s.Outcome().Terminal() != (len(sink.gameOvers) == 1) {
			t.Errorf("seed %d: outcome %v with %d game overs", seed, s.Outcome(), len(sink.gameOvers))
		}
	}
}

func TestStartResetsState(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	s := NewSession(cfg, 3, nil)
	s.Start(DefaultProgression())
	now := 0.0
	for range 2000 {
		now += tickMs
		s.Tick(now)
	}
	if s.Clock().Distance == 0 {
		t.Fatal("expected progress before restart")
	}

	s.Start(Progression{MaxHearts: 0})
	r := s.Runner()
	if r.Hearts != 1 || r.MaxHearts != 1 {
		t.Errorf("MaxHearts below 1 should clamp to 1, got %d/%d", r.Hearts, r.MaxHearts)
	}
	c := s.Clock()
	if c.ElapsedMs != 0 || c.Distance != 0 || c.Stage != 0 || c.SpeedMultiplier != 1 || c.DensityMultiplier != 1 {
		t.Errorf("clock not reset: %+v", c)
	}
	if len(s.Objects()) != 0 || s.Tally() != (Tally{}) || s.Outcome() != OutcomePlaying {
		t.Error("run state not reset")
	}
}
