package runner

import "github.com/vovakirdan/candy-run/internal/config"

// Clock is the session's time and distance bookkeeping.
type Clock struct {
	ElapsedMs         float64
	Distance          float64 // Total scrolled distance, drives spawn thresholds
	Stage             int
	SpeedMultiplier   float64
	DensityMultiplier float64

	BannerUntil float64 // Speed-up banner visible while ElapsedMs < BannerUntil
	ShakeUntil  float64 // Screen shake visible while ElapsedMs < ShakeUntil
}

func newClock() Clock {
	return Clock{SpeedMultiplier: 1.0, DensityMultiplier: 1.0}
}

// Progressor raises the stage multipliers as time passes.
type Progressor struct {
	cfg      config.DifficultyConfig
	schedule *config.StageSchedule
}

// NewProgressor creates a progressor. hardMode selects the hard factor.
func NewProgressor(cfg config.DifficultyConfig, hardMode bool) *Progressor {
	return &Progressor{
		cfg:      cfg,
		schedule: config.NewStageSchedule(cfg, hardMode),
	}
}

// HardFactor returns the constant hard mode multiplier (1.0 in normal mode).
func (p *Progressor) HardFactor() float64 {
	return p.schedule.HardFactor()
}

// Advance moves the clock to the stage implied by its elapsed time.
// Multipliers only grow, one step per stage crossed. It reports whether
// at least one stage was crossed.
func (p *Progressor) Advance(c *Clock) bool {
	target := p.schedule.Stage(c.ElapsedMs)
	if target <= c.Stage {
		return false
	}
	c.Stage = target
	c.SpeedMultiplier = p.schedule.SpeedMultiplier(target)
	c.DensityMultiplier = p.schedule.DensityMultiplier(target)
	c.BannerUntil = c.ElapsedMs + p.cfg.SpeedUpBannerMs
	return true
}

// ScrollSpeed returns the current world speed in px/ms.
func (p *Progressor) ScrollSpeed(c Clock, s config.ScrollConfig, candyLevel int) float64 {
	base := s.BaseSpeed + float64(candyLevel)*s.LevelBonus
	return base * c.SpeedMultiplier * p.HardFactor()
}

// ScrollSpeedAt returns the world speed once the clock reaches atMs,
// counting the stages crossed on the way.
func (p *Progressor) ScrollSpeedAt(c Clock, s config.ScrollConfig, candyLevel int, atMs float64) float64 {
	if stage := p.schedule.Stage(atMs); stage > c.Stage {
		c.SpeedMultiplier = p.schedule.SpeedMultiplier(stage)
	}
	return p.ScrollSpeed(c, s, candyLevel)
}

// Density returns the combined spawn frequency multiplier.
func (p *Progressor) Density(c Clock) float64 {
	return c.DensityMultiplier * p.HardFactor()
}
