package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner simulation configuration.
// Search order: customPath -> ~/.candyrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg, err := load(customPath, "runner.yaml", defaultRunnerYAML, DefaultRunnerConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid runner config: %w", err)
	}
	return cfg, nil
}

// LoadEconomy loads shop prices and daily limits.
// Search order: customPath -> ~/.candyrun/configs/economy.yaml -> ./configs/economy.yaml -> embedded default
func LoadEconomy(customPath string) (EconomyConfig, error) {
	cfg, err := load(customPath, "economy.yaml", defaultEconomyYAML, DefaultEconomyConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid economy config: %w", err)
	}
	return cfg, nil
}

// load decodes a YAML document on top of the hardcoded defaults so that
// partial files only override the keys they mention.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			parsed := fallback()
			if err := yaml.Unmarshal(data, &parsed); err == nil {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		parsed := fallback()
		if err := yaml.Unmarshal(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	parsed := fallback()
	if err := yaml.Unmarshal(embedded, &parsed); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".candyrun", "configs", filename)
}

// Validate rejects values the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive")
	case c.World.GroundOffset <= 0 || c.World.GroundOffset >= c.World.Height:
		return fmt.Errorf("ground_offset must lie inside the world")
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("gravity must be positive")
	case c.Physics.JumpImpulse >= 0 || c.Physics.DoubleJumpImpulse >= 0:
		return fmt.Errorf("jump impulses must be negative (upward)")
	case c.Physics.MaxStepMs <= 0:
		return fmt.Errorf("max_step_ms must be positive")
	case c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.SlideHeight <= 0:
		return fmt.Errorf("player hitbox must be positive")
	case c.Player.PickupRadius <= 0:
		return fmt.Errorf("pickup_radius must be positive")
	case c.Scroll.BaseSpeed <= 0:
		return fmt.Errorf("base_speed must be positive")
	case c.Obstacles.GapMin <= 0 || c.Obstacles.GapJitter < 0:
		return fmt.Errorf("obstacle gaps must be positive")
	case c.Obstacles.PitChance < 0 || c.Obstacles.AirChance < 0 ||
		c.Obstacles.PitChance+c.Obstacles.AirChance > 1:
		return fmt.Errorf("obstacle chances must be in [0, 1]")
	case c.Obstacles.AirChance > 0 && len(c.Obstacles.AirTiers) == 0:
		return fmt.Errorf("air_tiers required when air_chance > 0")
	case c.Obstacles.GroundSize <= 0 || c.Obstacles.AirSize <= 0 || c.Obstacles.PitMinWidth <= 0:
		return fmt.Errorf("obstacle sizes must be positive")
	case c.Collectibles.GapMin <= 0 || c.Collectibles.GapJitter < 0:
		return fmt.Errorf("collectible gaps must be positive")
	case c.Hearts.InvulnerabilityMs < 0:
		return fmt.Errorf("invulnerability_ms must not be negative")
	case c.Difficulty.StageDurationMs <= 0:
		return fmt.Errorf("stage_duration_ms must be positive")
	case c.Difficulty.SpeedStep < 0 || c.Difficulty.DensityStep < 0:
		return fmt.Errorf("difficulty steps must not be negative")
	case c.Difficulty.HardModeMultiplier < 1:
		return fmt.Errorf("hard_mode_multiplier must be at least 1")
	}
	return nil
}

// Validate rejects prices and limits that would break the shop.
func (e EconomyConfig) Validate() error {
	switch {
	case e.PriceUpgrade <= 0 || e.PriceGacha <= 0 || e.PriceHeartUpgrade <= 0 || e.PriceJumpUpgrade <= 0:
		return fmt.Errorf("prices must be positive")
	case e.ExchangeRate <= 0:
		return fmt.Errorf("exchange_rate must be positive")
	case e.DailyLimit < 0 || e.ShopLimit < 0:
		return fmt.Errorf("limits must not be negative")
	case e.HardModeEntryCost < 0 || e.StartingWallet < 0:
		return fmt.Errorf("costs must not be negative")
	case e.BaseHearts < 1 || e.MaxHearts < e.BaseHearts:
		return fmt.Errorf("hearts must satisfy 1 <= base_hearts <= max_hearts")
	case e.MaxJumpBonus < 0:
		return fmt.Errorf("max_jump_bonus must not be negative")
	case e.GamingDayStartHour < 0 || e.GamingDayStartHour > 23:
		return fmt.Errorf("gaming_day_start_hour must be in [0, 23]")
	}
	return nil
}
