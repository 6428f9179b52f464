// Package runner implements the Candy Run simulation: runner kinematics,
// procedural spawning, collision and scoring, stage progression and the
// session loop that ties them together. It performs no I/O and does not
// depend on the terminal platform.
package runner

import (
	"github.com/vovakirdan/candy-run/internal/config"
	"github.com/vovakirdan/candy-run/internal/core"
)

// Runner is the player's kinematic state. X is a fixed lane offset; only Y moves.
// Y grows downward, so jump impulses are negative.
type Runner struct {
	X        float64
	Y        float64
	VY       float64
	Grounded bool
	AirJumps int // Jumps used since leaving the ground, 0..2

	SlideHeld bool

	Hearts            int
	MaxHearts         int
	InvulnerableUntil float64 // Session ms; 0 means none

	// Plunging latches once the runner drops below the rest line inside a
	// pit span. A plunging runner is never grounded again.
	Plunging bool
}

// Pose is the runner's presentation state.
type Pose int

const (
	PoseRun Pose = iota
	PoseSlide
	PoseJump
	PoseFall
)

// String returns a human-readable pose name.
func (p Pose) String() string {
	switch p {
	case PoseRun:
		return "run"
	case PoseSlide:
		return "slide"
	case PoseJump:
		return "jump"
	case PoseFall:
		return "fall"
	default:
		return "unknown"
	}
}

func newRunner(cfg config.RunnerConfig, maxHearts int) Runner {
	return Runner{
		X:         cfg.Player.X,
		Y:         cfg.RestY(),
		Grounded:  true,
		Hearts:    maxHearts,
		MaxHearts: maxHearts,
	}
}

// Sliding reports whether the slide is physically effective.
// A hold captured in the air takes effect on the landing tick.
func (r Runner) Sliding() bool {
	return r.Grounded && r.SlideHeld
}

// Pose derives the presentation pose.
func (r Runner) Pose() Pose {
	switch {
	case r.Plunging:
		return PoseFall
	case r.Sliding():
		return PoseSlide
	case !r.Grounded:
		return PoseJump
	default:
		return PoseRun
	}
}

// Hitbox returns the obstacle collision box for the current pose.
func (r Runner) Hitbox(p config.PlayerConfig) core.Box {
	if r.Sliding() {
		return core.Box{CX: r.X, CY: r.Y + p.SlideOffset, W: p.Width, H: p.SlideHeight}
	}
	return core.Box{CX: r.X, CY: r.Y + p.CenterOffset, W: p.Width, H: p.Height}
}

// jumpKind identifies which impulse a jump request used.
type jumpKind int

const (
	jumpRejected jumpKind = iota
	jumpFirst
	jumpDouble
)

// jump applies a jump impulse if the state machine allows it.
func (r *Runner) jump(p config.PhysicsConfig) jumpKind {
	switch {
	case r.Plunging:
		return jumpRejected
	case r.Grounded:
		r.VY = p.JumpImpulse
		r.Grounded = false
		r.AirJumps = 1
		return jumpFirst
	case r.AirJumps < 2:
		r.VY = p.DoubleJumpImpulse
		r.AirJumps++
		return jumpDouble
	default:
		return jumpRejected
	}
}

// integrate applies gravity for dt milliseconds and resolves the ground.
// overPit reports whether the runner's lane lies inside a live pit span.
func (r *Runner) integrate(dt float64, restY float64, p config.PhysicsConfig, overPit bool) {
	r.VY += p.Gravity * dt
	r.Y += r.VY * dt

	if r.Plunging || r.Y < restY {
		return
	}
	if overPit {
		r.Plunging = true
		r.Grounded = false
		return
	}
	r.Y = restY
	r.VY = 0
	r.Grounded = true
	r.AirJumps = 0
}

// Airtime returns the duration in ms of a full single-jump arc from rest to rest.
func Airtime(p config.PhysicsConfig) float64 {
	if p.Gravity <= 0 {
		return 0
	}
	return 2 * -p.JumpImpulse / p.Gravity
}
