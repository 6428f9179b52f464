package runner

import (
	"github.com/vovakirdan/candy-run/internal/config"
)

// Session owns one play attempt. It is driven by a single goroutine: the
// host calls Tick once per frame and forwards input between ticks.
// Session is not safe for concurrent use.
type Session struct {
	cfg  config.RunnerConfig
	seed int64
	sink EventSink
	cues CueSink

	prog       Progression
	progressor *Progressor
	spawner    *Spawner
	reg        *Registry

	runner  Runner
	tally   Tally
	clock   Clock
	outcome Outcome

	paused  bool
	started bool
	hasRef  bool
	lastTs  float64
}

// NewSession creates a session. A nil sink discards events.
func NewSession(cfg config.RunnerConfig, seed int64, sink EventSink) *Session {
	if sink == nil {
		sink = NopSink{}
	}
	return &Session{
		cfg:     cfg,
		seed:    seed,
		sink:    sink,
		reg:     NewRegistry(),
		spawner: NewSpawner(cfg, seed),
	}
}

// SetCues installs an optional presentation cue sink.
func (s *Session) SetCues(c CueSink) {
	s.cues = c
}

// Start resets all run state and captures the progression snapshot.
func (s *Session) Start(p Progression) {
	if p.MaxHearts < 1 {
		p.MaxHearts = 1
	}
	if p.CandyScoreLevel < 0 {
		p.CandyScoreLevel = 0
	}
	if p.JumpBonusLevel < 0 {
		p.JumpBonusLevel = 0
	}
	s.prog = p
	s.progressor = NewProgressor(s.cfg.Difficulty, p.HardMode)
	s.spawner.Reset(s.seed)
	s.reg.Reset()
	s.runner = newRunner(s.cfg, p.MaxHearts)
	s.tally = Tally{}
	s.clock = newClock()
	s.outcome = OutcomePlaying
	s.paused = false
	s.hasRef = false
	s.lastTs = 0
	s.started = true
}

// Tick advances the simulation to the host time timestampMs.
func (s *Session) Tick(timestampMs float64) {
	if !s.started || s.outcome.Terminal() {
		return
	}

	dt := 0.0
	if s.hasRef {
		dt = timestampMs - s.lastTs
	}
	s.lastTs = timestampMs
	s.hasRef = true

	if s.paused {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if dt > s.cfg.Physics.MaxStepMs {
		dt = s.cfg.Physics.MaxStepMs
	}
	s.step(dt)
}

// speedAhead is the spawner's view of upcoming stage speed-ups.
func (s *Session) speedAhead(aheadMs float64) float64 {
	return s.progressor.ScrollSpeedAt(s.clock, s.cfg.Scroll, s.prog.CandyScoreLevel, s.clock.ElapsedMs+aheadMs)
}

// step runs physics, spawner, advection, collision and difficulty in order.
func (s *Session) step(dt float64) {
	s.clock.ElapsedMs += dt

	// Physics
	overPit := s.reg.PitUnder(s.runner.X)
	s.runner.integrate(dt, s.cfg.RestY(), s.cfg.Physics, overPit)

	// Spawner
	speed := s.progressor.ScrollSpeed(s.clock, s.cfg.Scroll, s.prog.CandyScoreLevel)
	stepDist := speed * dt
	s.clock.Distance += stepDist
	s.spawner.Update(s.reg, s.clock.Distance, speed, s.progressor.Density(s.clock), s.speedAhead, s.prog.CandyVariant)

	// Advection
	s.reg.Advect(stepDist)
	s.reg.Prune(s.cfg.World.CullX)

	// Collision
	s.collide()
	s.reg.Compact()
	if s.outcome.Terminal() {
		return
	}

	// Difficulty
	if s.progressor.Advance(&s.clock) {
		s.cue(CueSpeedUp)
	}
}

// Jump requests a jump. Ignored while paused, after game over, or when the
// state machine has no jump left.
func (s *Session) Jump() {
	if !s.started || s.paused || s.outcome.Terminal() {
		return
	}
	switch s.runner.jump(s.cfg.Physics) {
	case jumpFirst:
		s.tally.Jumps++
		s.cue(CueJump)
	case jumpDouble:
		s.tally.Jumps++
		s.cue(CueDoubleJump)
	}
}

// SetSlide stores the slide button state.
func (s *Session) SetSlide(held bool) {
	if s.outcome.Terminal() {
		return
	}
	s.runner.SlideHeld = held
}

// SetPaused freezes or resumes the simulation. Resuming re-baselines the
// frame clock so the pause does not show up as a large dt.
func (s *Session) SetPaused(paused bool) {
	if s.outcome.Terminal() || s.paused == paused {
		return
	}
	s.paused = paused
	if !paused {
		s.hasRef = false
	}
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// finish enters a terminal state and notifies the sink exactly once.
func (s *Session) finish(o Outcome) {
	if s.outcome.Terminal() {
		return
	}
	s.outcome = o
	s.runner.SlideHeld = false
	fell := o == OutcomeFell
	if fell {
		s.cue(CueFall)
	}
	s.cue(CueGameOver)
	s.sink.OnGameOver(s.Score(), s.tally.Candies, int(s.clock.ElapsedMs/1000), fell)
}

func (s *Session) cue(c Cue) {
	if s.cues != nil {
		s.cues.Cue(c)
	}
}

// Score returns the score the run would end with right now.
func (s *Session) Score() int {
	return Score(s.tally, s.prog.CandyScoreLevel, s.prog.JumpBonusLevel)
}

// Outcome returns the state machine position.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Runner returns a copy of the runner state.
func (s *Session) Runner() Runner {
	return s.runner
}

// Tally returns a copy of the run counters.
func (s *Session) Tally() Tally {
	return s.tally
}

// Clock returns a copy of the session clock.
func (s *Session) Clock() Clock {
	return s.clock
}

// Progression returns the snapshot captured at Start.
func (s *Session) Progression() Progression {
	return s.prog
}

// Objects returns a copy of the live world objects in insertion order.
func (s *Session) Objects() []Object {
	return s.reg.Live()
}

// Config returns the simulation config.
func (s *Session) Config() config.RunnerConfig {
	return s.cfg
}
