// Package candyrun adapts the runner session to the platform's Game
// interface: key actions in, a colored cell grid out.
package candyrun

import (
	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/core"
	"github.com/vovakirdan/candy-run/internal/registry"
	"github.com/vovakirdan/candy-run/internal/runner"
)

// Game IDs.
const (
	IDNormal = "candyrun"
	IDHard   = "candyrun_hard"
)

// SlideHoldMs is how long one duck press keeps the runner sliding.
// Terminals report key presses but not releases, so a held key shows up
// as repeated presses that keep extending the hold.
const SlideHoldMs = 400

// Game implements registry.Game on top of runner.Session.
type Game struct {
	hard    bool
	deps    registry.Deps
	cfg     config.RunnerConfig
	session *runner.Session
	runtime core.RuntimeConfig

	tick       int     // Steps since Reset, drives the fallback clock and animation
	nowMs      float64 // Timestamp of the last step
	slideUntil float64
	cfgErr     error
}

// New creates a Candy Run instance. deps.Progression.HardMode is
// overridden by the variant.
func New(hard bool, deps registry.Deps) *Game {
	return &Game{hard: hard, deps: deps}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.hard {
		return IDHard
	}
	return IDNormal
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.hard {
		return "Candy Run (Hard)"
	}
	return "Candy Run"
}

// Reset loads the config and starts a fresh session.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt

	cfg, err := config.LoadRunner(g.deps.ConfigPath)
	g.cfgErr = err
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if g.deps.Preset != "" {
		if preset, err := config.ParsePreset(g.deps.Preset); err == nil {
			config.ApplyPreset(&cfg, preset)
		}
	}
	g.cfg = cfg

	prog := g.deps.Progression
	if prog.MaxHearts == 0 {
		prog = runner.DefaultProgression()
		prog.CandyVariant = -1
		prog.Appearance = g.deps.Progression.Appearance
	}
	prog.HardMode = g.hard

	g.session = runner.NewSession(cfg, rt.Seed, g.deps.Sink)
	if g.deps.Cues != nil {
		g.session.SetCues(g.deps.Cues)
	}
	g.session.Start(prog)

	g.tick = 0
	g.nowMs = 0
	g.slideUntil = 0
}

// ConfigErr returns the error from loading the config file, if the
// embedded defaults had to be used instead.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Step feeds one host frame of input into the session and advances it.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(core.DefaultConfig())
	}

	now := in.TimestampMs
	if now <= 0 {
		now = float64(g.tick) * g.runtime.TickMs()
	}
	g.tick++
	g.nowMs = now

	if in.Has(core.ActionPause) {
		g.session.SetPaused(!g.session.Paused())
	}
	if in.Has(core.ActionJump) {
		g.session.Jump()
	}
	if in.Has(core.ActionDuck) {
		g.slideUntil = now + SlideHoldMs
		g.session.SetSlide(true)
	} else if g.slideUntil > 0 && now >= g.slideUntil {
		g.slideUntil = 0
		g.session.SetSlide(false)
	}

	g.session.Tick(now)
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Candies:  g.session.Tally().Candies,
		GameOver: g.session.Outcome().Terminal(),
		Paused:   g.session.Paused(),
		Fell:     g.session.Outcome() == runner.OutcomeFell,
	}
}

// Session exposes the underlying session, mainly for tests and hosts
// that want the richer Frame.
func (g *Game) Session() *runner.Session {
	return g.session
}

// Register both variants with the registry
func init() {
	registry.Register(IDNormal, func(d registry.Deps) registry.Game {
		return New(false, d)
	})
	registry.Register(IDHard, func(d registry.Deps) registry.Game {
		return New(true, d)
	})
}
