package runner

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/candy-run/internal/config"
)

func TestObstacleGapNeverBelowClearance(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	for _, hard := range []float64{1.0, cfg.Difficulty.HardModeMultiplier} {
		for m := 1.0; m <= 10.0; m += 0.1 {
			speed := cfg.Scroll.BaseSpeed * m * hard
			for _, u := range []float64{0, 0.25, 0.5, 0.9999} {
				gap := ObstacleGap(cfg, u, m*hard, speed)
				if gap < Clearance(cfg, speed) {
					t.Fatalf("hard=%v m=%.1f u=%v: gap %v < clearance %v", hard, m, u, gap, Clearance(cfg, speed))
				}
			}
		}
	}
}

func TestSpawnerGapsAcrossProgression(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sp := NewSpawner(cfg, 42)
	reg := NewRegistry()

	distance := 0.0
	density := 1.0
	speedMult := 1.0
	lastSpawnAt := -1.0
	lastGap := 0.0
	spawned := 0

	for tick := 0; tick < 200000; tick++ {
		// Ramp multipliers well past anything a real run reaches.
		if tick%500 == 0 {
			speedMult += 0.12
			density += 0.12
		}
		speed := cfg.Scroll.BaseSpeed * speedMult
		distance += speed * tickMs

		before := countKind(reg, func(k Kind) bool { return k != KindCollectible })
		sp.Update(reg, distance, speed, density, nil, 0)
		after := countKind(reg, func(k Kind) bool { return k != KindCollectible })
		reg.Reset()

		if after == before {
			continue
		}
		spawned++
		if got := sp.LastGap(); got < Clearance(cfg, speed) {
			t.Fatalf("tick %d: gap %v below clearance %v at speed %v", tick, got, Clearance(cfg, speed), speed)
		}
		if lastSpawnAt >= 0 && distance-lastSpawnAt < lastGap-1e-6 {
			t.Fatalf("tick %d: spacing %v below drawn gap %v", tick, distance-lastSpawnAt, lastGap)
		}
		lastSpawnAt = distance
		lastGap = sp.LastGap()
	}
	if spawned < 100 {
		t.Fatalf("only %d obstacles spawned", spawned)
	}
}

func countKind(reg *Registry, match func(Kind) bool) int {
	n := 0
	reg.Each(func(_ int, o *Object) bool {
		if match(o.Kind) {
			n++
		}
		return true
	})
	return n
}

// jumpWindow returns the first and last tick time (ms after the jump) at
// which a single jump keeps the hitbox vertically clear of a ground obstacle.
func jumpWindow(t *testing.T, cfg config.RunnerConfig) (float64, float64) {
	t.Helper()
	r := newRunner(cfg, 1)
	r.jump(cfg.Physics)
	ob := groundObstacleAt(cfg, r.X).Shape(cfg.Player)

	enter, exit := -1.0, -1.0
	for ms := tickMs; ms < 2000; ms += tickMs {
		r.integrate(tickMs, cfg.RestY(), cfg.Physics, false)
		if r.Grounded {
			break
		}
		if !HitShape(r, cfg.Player).IsIntersecting(ob) {
			if enter < 0 {
				enter = ms
			}
			exit = ms
		}
	}
	if enter < 0 {
		t.Fatal("single jump never clears a ground obstacle")
	}
	return enter, exit
}

// An autopilot that jumps at the right moment must clear a row of ground
// obstacles spaced at exactly the clearance distance.
func TestClearanceGapIsJumpable(t *testing.T) {
	for _, m := range []float64{1, 1.5, 2.5, 4} {
		cfg := quietConfig()
		cfg.Difficulty.Enabled = false
		cfg.Scroll.BaseSpeed = 0.4 * m
		cfg.Scroll.LevelBonus = 0

		speed := cfg.Scroll.BaseSpeed
		gap := Clearance(cfg, speed)
		enter, exit := jumpWindow(t, cfg)
		halfSpan := (cfg.Player.Width+cfg.Obstacles.GroundSize)/2 - cfg.Player.HitSlack
		if exit-enter <= 2*halfSpan/speed+tickMs {
			t.Fatalf("m=%v: jump window %v too short for overlap %v", m, exit-enter, 2*halfSpan/speed)
		}
		trigger := speed*(enter+exit)/2 + speed*tickMs/2

		h := newHarness(t, cfg, Progression{MaxHearts: 3})
		for k := 0; k < 5; k++ {
			h.s.reg.Add(groundObstacleAt(cfg, 700+float64(k)*gap))
		}

		for i := 0; i < 5000 && len(h.s.Objects()) > 0; i++ {
			r := h.s.Runner()
			if r.Grounded {
				nearest := math.Inf(1)
				for _, o := range h.s.Objects() {
					if dx := o.X - r.X; dx > 0 && dx < nearest {
						nearest = dx
					}
				}
				if nearest <= trigger {
					h.s.Jump()
				}
			}
			h.tick()
		}

		if len(h.s.Objects()) != 0 {
			t.Fatalf("m=%v: obstacles never scrolled away", m)
		}
		if got := h.s.Runner().Hearts; got != 3 {
			t.Errorf("m=%v: autopilot lost %d hearts at gap %v", m, 3-got, gap)
		}
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	run := func() []Object {
		sp := NewSpawner(cfg, 99)
		reg := NewRegistry()
		d := 0.0
		for range 2000 {
			d += 6.4
			sp.Update(reg, d, 0.4, 1, nil, -1)
		}
		return reg.Live()
	}
	a, b := run(), run()
	if len(a) == 0 {
		t.Fatal("no objects spawned")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different streams")
	}
}

func TestSpawnerCategoryMix(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sp := NewSpawner(cfg, 7)
	counts := map[Kind]int{}
	const n = 20000
	for range n {
		o := sp.obstacle()
		counts[o.Kind]++

		switch o.Kind {
		case KindGround:
			if o.Y+o.H/2 != cfg.World.GroundY() {
				t.Fatalf("ground obstacle not on ground: %+v", o)
			}
		case KindAirborne:
			found := false
			for _, tier := range cfg.Obstacles.AirTiers {
				if o.Y == cfg.World.GroundY()-tier {
					found = true
				}
			}
			if !found {
				t.Fatalf("airborne obstacle off tier: %+v", o)
			}
		case KindPit:
			if o.W < cfg.Obstacles.PitMinWidth || o.W >= cfg.Obstacles.PitMinWidth+cfg.Obstacles.PitWidthJitter {
				t.Fatalf("pit width out of range: %v", o.W)
			}
		}
		if o.X != cfg.World.Width {
			t.Fatalf("spawned at x=%v, expected %v", o.X, cfg.World.Width)
		}
	}

	check := func(k Kind, want float64) {
		got := float64(counts[k]) / n
		if math.Abs(got-want) > 0.02 {
			t.Errorf("%v share = %.3f, expected about %.2f", k, got, want)
		}
	}
	check(KindPit, cfg.Obstacles.PitChance)
	check(KindAirborne, cfg.Obstacles.AirChance)
	check(KindGround, 1-cfg.Obstacles.PitChance-cfg.Obstacles.AirChance)
}

func TestCollectiblePlacement(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sp := NewSpawner(cfg, 5)

	fixed := sp.collectible(3)
	if fixed.Variant != 3 || fixed.Kind != KindCollectible || fixed.R != cfg.Collectibles.Radius {
		t.Errorf("fixed variant candy = %+v", fixed)
	}

	seen := map[int]bool{}
	for range 2000 {
		c := sp.collectible(-1)
		if c.Variant < 0 || c.Variant >= cfg.Collectibles.Variants {
			t.Fatalf("variant %d out of range", c.Variant)
		}
		seen[c.Variant] = true
		rise := cfg.World.GroundY() - c.Y
		if rise < cfg.Collectibles.HeightMin || rise >= cfg.Collectibles.HeightMin+cfg.Collectibles.HeightJitter {
			t.Fatalf("candy height %v out of band", rise)
		}
	}
	if len(seen) < cfg.Collectibles.Variants/2 {
		t.Errorf("only %d variants drawn", len(seen))
	}
}

func TestCollectiblesDenserThanObstacles(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sp := NewSpawner(cfg, 11)
	reg := NewRegistry()
	d := 0.0
	for range 20000 {
		d += 6.4
		sp.Update(reg, d, 0.4, 1, nil, 0)
	}
	candies := countKind(reg, func(k Kind) bool { return k == KindCollectible })
	obstacles := countKind(reg, func(k Kind) bool { return k != KindCollectible })
	if candies <= obstacles {
		t.Errorf("candies %d should outnumber obstacles %d", candies, obstacles)
	}
}

// Consecutive ground obstacles stay a clearance apart at the scroll speed of
// every tick the runner spends between them, including after stage speed-ups.
func TestObstacleSpacingHoldsAtArrival(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.PitChance = 0
	cfg.Obstacles.AirChance = 0
	cfg.Collectibles.FirstAt = 1e12
	ticks := 20 * int(cfg.Difficulty.StageDurationMs/tickMs)

	for seed := int64(1); seed <= 5; seed++ {
		s := NewSession(cfg, seed, nil)
		s.Start(Progression{MaxHearts: 1 << 20, HardMode: true})
		s.Tick(0)

		now, checked := 0.0, 0
		for i := 0; i < ticks && !s.Outcome().Terminal(); i++ {
			now += tickMs
			s.Tick(now)

			need := Clearance(cfg, s.progressor.ScrollSpeed(s.clock, cfg.Scroll, 0))
			rx := s.Runner().X
			objs := s.Objects()
			for k := 0; k+1 < len(objs); k++ {
				lead, next := objs[k], objs[k+1]
				if lead.X > rx || next.X < rx {
					continue
				}
				checked++
				if next.X-lead.X < need-1e-6 {
					t.Fatalf("seed %d stage %d: spacing %v below clearance %v", seed, s.Clock().Stage, next.X-lead.X, need)
				}
			}
		}
		if checked == 0 {
			t.Fatalf("seed %d: no obstacle pairs reached the runner", seed)
		}
	}
}

func TestSpawnerGapLooksAheadToNextStage(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.GapMin = 0
	cfg.Obstacles.GapJitter = 0
	speed := cfg.Scroll.BaseSpeed
	faster := func(float64) float64 { return speed * 1.5 }

	sp := NewSpawner(cfg, 1)
	reg := NewRegistry()
	sp.Update(reg, cfg.Obstacles.FirstAt, speed, 1, faster, 0)
	if got, want := sp.LastGap(), Clearance(cfg, speed*1.5); math.Abs(got-want) > 1e-9 {
		t.Errorf("gap = %v, expected clearance at arrival speed %v", got, want)
	}

	sp = NewSpawner(cfg, 1)
	sp.Update(reg, cfg.Obstacles.FirstAt, speed, 1, nil, 0)
	if got, want := sp.LastGap(), Clearance(cfg, speed); math.Abs(got-want) > 1e-9 {
		t.Errorf("gap without lookahead = %v, expected %v", got, want)
	}
}
