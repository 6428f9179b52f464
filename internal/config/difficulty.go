package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	case DifficultyFixed:
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Hard mode itself is a session input; the preset only guarantees
// that its multiplier is usable.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		if cfg.Difficulty.HardModeMultiplier < 1 {
			cfg.Difficulty.HardModeMultiplier = 1.5
		}
	default:
		cfg.Difficulty.Enabled = true
	}
}

// StageSchedule derives stage multipliers from elapsed time.
type StageSchedule struct {
	cfg  DifficultyConfig
	hard float64
}

// NewStageSchedule creates a schedule. hardMode applies the hard multiplier
// on top of progression.
func NewStageSchedule(cfg DifficultyConfig, hardMode bool) *StageSchedule {
	hard := 1.0
	if hardMode && cfg.HardModeMultiplier > 1 {
		hard = cfg.HardModeMultiplier
	}
	return &StageSchedule{cfg: cfg, hard: hard}
}

// IsEnabled returns whether stage progression is active.
func (s *StageSchedule) IsEnabled() bool {
	return s.cfg.Enabled && s.cfg.StageDurationMs > 0
}

// Stage returns the stage index reached after elapsedMs.
func (s *StageSchedule) Stage(elapsedMs float64) int {
	if !s.IsEnabled() || elapsedMs <= 0 {
		return 0
	}
	return int(elapsedMs / s.cfg.StageDurationMs)
}

// SpeedMultiplier returns the scroll multiplier at a stage, excluding hard mode.
func (s *StageSchedule) SpeedMultiplier(stage int) float64 {
	if !s.IsEnabled() {
		return 1.0
	}
	return 1.0 + float64(stage)*s.cfg.SpeedStep
}

// DensityMultiplier returns the spawn frequency multiplier at a stage, excluding hard mode.
func (s *StageSchedule) DensityMultiplier(stage int) float64 {
	if !s.IsEnabled() {
		return 1.0
	}
	return 1.0 + float64(stage)*s.cfg.DensityStep
}

// HardFactor returns the constant multiplier applied in hard mode (1.0 otherwise).
func (s *StageSchedule) HardFactor() float64 {
	return s.hard
}
