package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/economy.yaml
var defaultEconomyYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:        1280,
			Height:       720,
			GroundOffset: 160,
			CullX:        -300,
		},
		Physics: PhysicsConfig{
			Gravity:           0.005,
			JumpImpulse:       -1.25,
			DoubleJumpImpulse: -1.125,
			MaxStepMs:         50,
		},
		Player: PlayerConfig{
			X:            150,
			FootOffset:   25,
			Width:        60,
			Height:       60,
			SlideHeight:  25,
			CenterOffset: -20,
			SlideOffset:  15,
			HitSlack:     20,
			PickupOffset: -20,
			PickupRadius: 50,
		},
		Scroll: ScrollConfig{
			BaseSpeed:  0.4,
			LevelBonus: 0.000625,
		},
		Obstacles: ObstacleConfig{
			FirstAt:        500,
			GapMin:         500,
			GapJitter:      600,
			PitChance:      0.15,
			AirChance:      0.30,
			GroundSize:     95,
			AirSize:        75,
			AirTiers:       []float64{60, 107, 153, 200},
			PitMinWidth:    100,
			PitWidthJitter: 80,
		},
		Collectibles: CollectibleConfig{
			FirstAt:      300,
			GapMin:       250,
			GapJitter:    300,
			Radius:       25,
			HeightMin:    60,
			HeightJitter: 160,
			Variants:     20,
		},
		Hearts: HeartsConfig{
			InvulnerabilityMs: 1500,
			ShakeMs:           500,
		},
		Difficulty: DifficultyConfig{
			Enabled:            true,
			StageDurationMs:    12000,
			SpeedStep:          0.12,
			DensityStep:        0.12,
			SpeedUpBannerMs:    2000,
			HardModeMultiplier: 1.5,
		},
	}
}

// DefaultEconomyConfig returns the default shop and limit configuration.
func DefaultEconomyConfig() EconomyConfig {
	return EconomyConfig{
		PriceUpgrade:       5,
		PriceGacha:         10,
		PriceHeartUpgrade:  30,
		PriceJumpUpgrade:   20,
		ExchangeRate:       10,
		DailyLimit:         5,
		ShopLimit:          1,
		HardModeEntryCost:  200,
		StartingWallet:     100,
		BaseHearts:         3,
		MaxHearts:          5,
		MaxJumpBonus:       10,
		GamingDayStartHour: 8,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config document.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "runner":
		return defaultRunnerYAML
	case "economy":
		return defaultEconomyYAML
	default:
		return nil
	}
}
