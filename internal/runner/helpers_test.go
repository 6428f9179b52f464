package runner

import (
	"testing"

	"github.com/vovakirdan/candy-run/internal/config"
)

const tickMs = 16.0

type gameOver struct {
	score, candies, seconds int
	fell                    bool
}

type recordingSink struct {
	added     []int
	gameOvers []gameOver
}

func (r *recordingSink) OnAddScore(amount int) {
	r.added = append(r.added, amount)
}

func (r *recordingSink) OnGameOver(score, candies, seconds int, fell bool) {
	r.gameOvers = append(r.gameOvers, gameOver{score, candies, seconds, fell})
}

type recordingCues struct {
	cues []Cue
}

func (r *recordingCues) Cue(c Cue) {
	r.cues = append(r.cues, c)
}

func (r *recordingCues) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// quietConfig disables automatic spawning so tests place objects by hand.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.FirstAt = 1e12
	cfg.Collectibles.FirstAt = 1e12
	return cfg
}

type harness struct {
	t    *testing.T
	s    *Session
	sink *recordingSink
	cues *recordingCues
	now  float64
}

func newHarness(t *testing.T, cfg config.RunnerConfig, p Progression) *harness {
	t.Helper()
	sink := &recordingSink{}
	cues := &recordingCues{}
	s := NewSession(cfg, 1, sink)
	s.SetCues(cues)
	s.Start(p)
	s.Tick(0) // baseline
	return &harness{t: t, s: s, sink: sink, cues: cues}
}

func (h *harness) tick() {
	h.now += tickMs
	h.s.Tick(h.now)
}

func (h *harness) ticks(n int) {
	for range n {
		h.tick()
	}
}

// tickUntil ticks until cond holds, failing the test after max ticks.
func (h *harness) tickUntil(cond func() bool, max int) {
	h.t.Helper()
	for range max {
		if cond() {
			return
		}
		h.tick()
	}
	if !cond() {
		h.t.Fatalf("condition not reached after %d ticks", max)
	}
}

// groundObstacleAt returns a ground obstacle centered at x.
func groundObstacleAt(cfg config.RunnerConfig, x float64) Object {
	size := cfg.Obstacles.GroundSize
	return Object{
		Kind: KindGround,
		Type: TypeCactus,
		X:    x,
		Y:    cfg.World.GroundY() - size/2,
		W:    size,
		H:    size,
	}
}

// airObstacleAt returns an airborne obstacle centered at x, tier px above ground.
func airObstacleAt(cfg config.RunnerConfig, x, tier float64) Object {
	size := cfg.Obstacles.AirSize
	return Object{
		Kind: KindAirborne,
		Type: TypeBird,
		X:    x,
		Y:    cfg.World.GroundY() - tier,
		W:    size,
		H:    size,
	}
}

// pitAt returns a pit centered at x.
func pitAt(cfg config.RunnerConfig, x, w float64) Object {
	depth := cfg.World.GroundOffset
	return Object{
		Kind: KindPit,
		Type: TypeHole,
		X:    x,
		Y:    cfg.World.GroundY() + depth/2,
		W:    w,
		H:    depth,
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
