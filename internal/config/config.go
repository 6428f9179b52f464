// Package config provides YAML-based configuration loading for the runner
// simulation and the candy economy.
package config

// RunnerConfig contains all tuning for the runner simulation.
// Distances are in world pixels, times in milliseconds and speeds in
// pixels per millisecond.
type RunnerConfig struct {
	World        WorldConfig       `yaml:"world"`
	Physics      PhysicsConfig     `yaml:"physics"`
	Player       PlayerConfig      `yaml:"player"`
	Scroll       ScrollConfig      `yaml:"scroll"`
	Obstacles    ObstacleConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	Hearts       HeartsConfig      `yaml:"hearts"`
	Difficulty   DifficultyConfig  `yaml:"difficulty"`
}

// WorldConfig defines the logical playfield.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Ground line distance from the bottom edge
	CullX        float64 `yaml:"cull_x"`        // Objects left of this are dropped
}

// GroundY returns the y coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundOffset
}

// PhysicsConfig defines vertical kinematics.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`             // px/ms^2, positive is down
	JumpImpulse       float64 `yaml:"jump_impulse"`        // px/ms, negative is up
	DoubleJumpImpulse float64 `yaml:"double_jump_impulse"` // px/ms, second jump in the air
	MaxStepMs         float64 `yaml:"max_step_ms"`         // dt clamp
}

// PlayerConfig defines the runner's lane position and hitbox.
type PlayerConfig struct {
	X            float64 `yaml:"x"`
	FootOffset   float64 `yaml:"foot_offset"` // Rest y is GroundY - FootOffset
	Width        float64 `yaml:"width"`       // Full hitbox width
	Height       float64 `yaml:"height"`      // Full hitbox height while running
	SlideHeight  float64 `yaml:"slide_height"`
	CenterOffset float64 `yaml:"center_offset"` // Hitbox center relative to y while running
	SlideOffset  float64 `yaml:"slide_offset"`  // Hitbox center relative to y while sliding
	HitSlack     float64 `yaml:"hit_slack"`     // Forgiveness subtracted from each overlap axis
	PickupOffset float64 `yaml:"pickup_offset"` // Pickup point relative to y
	PickupRadius float64 `yaml:"pickup_radius"`
}

// RestY returns the runner's y while standing on the ground.
func (c RunnerConfig) RestY() float64 {
	return c.World.GroundY() - c.Player.FootOffset
}

// ScrollConfig defines how fast the world moves toward the runner.
type ScrollConfig struct {
	BaseSpeed  float64 `yaml:"base_speed"`  // px/ms at stage 0
	LevelBonus float64 `yaml:"level_bonus"` // px/ms added per candy level
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	FirstAt        float64   `yaml:"first_at"` // Distance of the first obstacle
	GapMin         float64   `yaml:"gap_min"`
	GapJitter      float64   `yaml:"gap_jitter"`
	PitChance      float64   `yaml:"pit_chance"`
	AirChance      float64   `yaml:"air_chance"`
	GroundSize     float64   `yaml:"ground_size"`
	AirSize        float64   `yaml:"air_size"`
	AirTiers       []float64 `yaml:"air_tiers"` // Heights above the ground line
	PitMinWidth    float64   `yaml:"pit_min_width"`
	PitWidthJitter float64   `yaml:"pit_width_jitter"`
}

// CollectibleConfig defines candy spawning.
type CollectibleConfig struct {
	FirstAt      float64 `yaml:"first_at"`
	GapMin       float64 `yaml:"gap_min"`
	GapJitter    float64 `yaml:"gap_jitter"`
	Radius       float64 `yaml:"radius"`
	HeightMin    float64 `yaml:"height_min"`
	HeightJitter float64 `yaml:"height_jitter"`
	Variants     int     `yaml:"variants"` // Cosmetic candy variants
}

// HeartsConfig defines how obstacle hits are forgiven.
type HeartsConfig struct {
	InvulnerabilityMs float64 `yaml:"invulnerability_ms"`
	ShakeMs           float64 `yaml:"shake_ms"`
}

// DifficultyConfig defines the stage clock.
type DifficultyConfig struct {
	Enabled            bool    `yaml:"enabled"`
	StageDurationMs    float64 `yaml:"stage_duration_ms"`
	SpeedStep          float64 `yaml:"speed_step"`
	DensityStep        float64 `yaml:"density_step"`
	SpeedUpBannerMs    float64 `yaml:"speed_up_banner_ms"`
	HardModeMultiplier float64 `yaml:"hard_mode_multiplier"`
}

// EconomyConfig contains shop prices and daily limits for the profile layer.
type EconomyConfig struct {
	PriceUpgrade       int `yaml:"price_upgrade"` // Multiplied by the current candy level
	PriceGacha         int `yaml:"price_gacha"`
	PriceHeartUpgrade  int `yaml:"price_heart_upgrade"`
	PriceJumpUpgrade   int `yaml:"price_jump_upgrade"`
	ExchangeRate       int `yaml:"exchange_rate"` // Candies per cookie
	DailyLimit         int `yaml:"daily_limit"`
	ShopLimit          int `yaml:"shop_limit"`
	HardModeEntryCost  int `yaml:"hard_mode_entry_cost"` // In candies
	StartingWallet     int `yaml:"starting_wallet"`
	BaseHearts         int `yaml:"base_hearts"`
	MaxHearts          int `yaml:"max_hearts"`
	MaxJumpBonus       int `yaml:"max_jump_bonus"`
	GamingDayStartHour int `yaml:"gaming_day_start_hour"`
}
