package runner

import (
	"fmt"

	"github.com/vovakirdan/candy-run/internal/core"
)

// MaxBackgroundTier caps the background theme index.
const MaxBackgroundTier = 9

// Sprite is one drawable world object.
type Sprite struct {
	Kind    Kind
	Type    string
	Box     core.Box
	Variant int
}

// Frame is everything a renderer needs for one frame. It is derived from
// session state and never feeds back into it.
type Frame struct {
	WorldW, WorldH float64
	GroundY        float64

	Sprites []Sprite
	Pits    []core.Box

	Player     core.Box // Drawn body, not the forgiving hitbox
	Pose       Pose
	Hurt       bool // Inside the invulnerability window
	Appearance Appearance

	Hearts    int
	MaxHearts int
	Candies   int
	Jumps     int
	Score     int
	Stage     int // 1-based
	Clock     string
	SpeedUp   bool
	Shake     bool
	BgTier    int

	HardMode bool
	Paused   bool
	GameOver bool
	Fell     bool
}

// Frame builds the render data for the current state.
func (s *Session) Frame() Frame {
	cfg := s.cfg
	r := s.runner
	now := s.clock.ElapsedMs

	f := Frame{
		WorldW:     cfg.World.Width,
		WorldH:     cfg.World.Height,
		GroundY:    cfg.World.GroundY(),
		Pose:       r.Pose(),
		Hurt:       r.Invulnerable(now) && !s.outcome.Terminal(),
		Appearance: s.prog.Appearance,
		Hearts:     r.Hearts,
		MaxHearts:  r.MaxHearts,
		Candies:    s.tally.Candies,
		Jumps:      s.tally.Jumps,
		Score:      s.Score(),
		Stage:      s.clock.Stage + 1,
		Clock:      FormatClock(now),
		SpeedUp:    now < s.clock.BannerUntil,
		Shake:      now < s.clock.ShakeUntil,
		BgTier:     min(s.clock.Stage, MaxBackgroundTier),
		HardMode:   s.prog.HardMode,
		Paused:     s.paused,
		GameOver:   s.outcome.Terminal(),
		Fell:       s.outcome == OutcomeFell,
	}

	// Body box: feet at y + FootOffset, height from the current pose.
	h := cfg.Player.Height
	if r.Sliding() {
		h = cfg.Player.SlideHeight
	}
	feet := r.Y + cfg.Player.FootOffset
	f.Player = core.Box{CX: r.X, CY: feet - h/2, W: cfg.Player.Width, H: h}

	s.reg.Each(func(_ int, o *Object) bool {
		if o.Kind == KindPit {
			f.Pits = append(f.Pits, o.Box())
			return true
		}
		f.Sprites = append(f.Sprites, Sprite{
			Kind:    o.Kind,
			Type:    o.Type,
			Box:     o.Box(),
			Variant: o.Variant,
		})
		return true
	})
	return f
}

// FormatClock renders elapsed milliseconds as MM:SS.
func FormatClock(ms float64) string {
	if ms < 0 {
		ms = 0
	}
	total := int(ms / 1000)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
