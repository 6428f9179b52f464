package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var runner RunnerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("runner"), &runner); err != nil {
		t.Fatalf("failed to parse embedded runner.yaml: %v", err)
	}
	if !reflect.DeepEqual(runner, DefaultRunnerConfig()) {
		t.Errorf("embedded runner.yaml differs from DefaultRunnerConfig:\n got %+v\nwant %+v", runner, DefaultRunnerConfig())
	}

	var economy EconomyConfig
	if err := yaml.Unmarshal(GetDefaultYAML("economy"), &economy); err != nil {
		t.Fatalf("failed to parse embedded economy.yaml: %v", err)
	}
	if economy != DefaultEconomyConfig() {
		t.Errorf("embedded economy.yaml differs from DefaultEconomyConfig:\n got %+v\nwant %+v", economy, DefaultEconomyConfig())
	}

	if GetDefaultYAML("unknown") != nil {
		t.Error("expected nil for unknown document")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Errorf("default runner config invalid: %v", err)
	}
	if err := DefaultEconomyConfig().Validate(); err != nil {
		t.Errorf("default economy config invalid: %v", err)
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	partial := []byte("physics:\n  gravity: 0.01\nscroll:\n  base_speed: 0.5\n")
	if err := os.WriteFile(path, partial, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() error: %v", err)
	}
	if cfg.Physics.Gravity != 0.01 {
		t.Errorf("gravity = %v, expected 0.01", cfg.Physics.Gravity)
	}
	if cfg.Scroll.BaseSpeed != 0.5 {
		t.Errorf("base_speed = %v, expected 0.5", cfg.Scroll.BaseSpeed)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Player.X != DefaultRunnerConfig().Player.X {
		t.Errorf("player.x = %v, expected default %v", cfg.Player.X, DefaultRunnerConfig().Player.X)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "physics: [oops"},
		{name: "upward gravity", content: "physics:\n  gravity: -1\n"},
		{name: "chances above one", content: "obstacles:\n  pit_chance: 0.6\n  air_chance: 0.6\n"},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := LoadRunner(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestLoadEconomyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economy.yaml")
	if err := os.WriteFile(path, []byte("exchange_rate: 20\nmax_hearts: 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadEconomy(path)
	if err != nil {
		t.Fatalf("LoadEconomy() error: %v", err)
	}
	if cfg.ExchangeRate != 20 || cfg.MaxHearts != 4 {
		t.Errorf("got rate=%d hearts=%d, expected 20 and 4", cfg.ExchangeRate, cfg.MaxHearts)
	}
	if cfg.PriceGacha != DefaultEconomyConfig().PriceGacha {
		t.Errorf("price_gacha = %d, expected default", cfg.PriceGacha)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePreset(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStageSchedule(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty

	s := NewStageSchedule(cfg, false)
	if got := s.Stage(11999); got != 0 {
		t.Errorf("Stage(11999) = %d, expected 0", got)
	}
	if got := s.Stage(24000); got != 2 {
		t.Errorf("Stage(24000) = %d, expected 2", got)
	}
	if got := s.SpeedMultiplier(2); got < 1.2399 || got > 1.2401 {
		t.Errorf("SpeedMultiplier(2) = %v, expected 1.24", got)
	}
	if s.HardFactor() != 1.0 {
		t.Errorf("HardFactor() = %v, expected 1.0", s.HardFactor())
	}

	hard := NewStageSchedule(cfg, true)
	if hard.HardFactor() != 1.5 {
		t.Errorf("hard HardFactor() = %v, expected 1.5", hard.HardFactor())
	}

	fixedCfg := DefaultRunnerConfig()
	ApplyPreset(&fixedCfg, DifficultyFixed)
	fixed := NewStageSchedule(fixedCfg.Difficulty, false)
	if fixed.Stage(100000) != 0 || fixed.SpeedMultiplier(5) != 1.0 || fixed.DensityMultiplier(5) != 1.0 {
		t.Error("fixed preset should disable progression")
	}
}
