// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// EchoMazeConfig contains all configuration for the Echo Maze game.
type EchoMazeConfig struct {
	Grid     EchoMazeGrid     `yaml:"grid"`
	Entities EchoMazeEntities `yaml:"entities"`
	Echo     EchoMazeEcho     `yaml:"echo"`
	Gameplay EchoMazeGameplay `yaml:"gameplay"`
	Scoring  EchoMazeScoring  `yaml:"scoring"`
}

// EchoMazeGrid sets the maze size in cells. The game shrinks it to fit the
// terminal.
type EchoMazeGrid struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MaxAttempts int `yaml:"max_attempts"` // Carve/placement attempt cap
}

// EchoMazeEntities sets how many pickups and hazards are placed.
type EchoMazeEntities struct {
	Keys  int `yaml:"keys"`
	Coins int `yaml:"coins"`
	Traps int `yaml:"traps"` // 0 = 5 + width/4
}

// EchoMazeEcho tunes the sonar ping.
type EchoMazeEcho struct {
	Radius     int `yaml:"radius"`      // Visibility radius at rest
	PingRadius int `yaml:"ping_radius"` // Radius while a ping is active
	Cooldown   int `yaml:"cooldown"`    // Ticks before the next ping
}

// EchoMazeGameplay holds timers.
type EchoMazeGameplay struct {
	TimeLimit      int `yaml:"time_limit"`      // Seconds
	FootprintTicks int `yaml:"footprint_ticks"` // Lifetime of a rune footprint
}

// EchoMazeScoring holds point values.
type EchoMazeScoring struct {
	Coin int `yaml:"coin"`
	Key  int `yaml:"key"`
	Win  int `yaml:"win"` // Bonus on top of remaining seconds
}

// GravityFlipConfig contains all configuration for the Gravity Flip game.
type GravityFlipConfig struct {
	Physics    GravityFlipPhysics   `yaml:"physics"`
	Obstacles  GravityFlipObstacles `yaml:"obstacles"`
	Player     GravityFlipPlayer    `yaml:"player"`
	Gameplay   GravityFlipGameplay  `yaml:"gameplay"`
	Difficulty DifficultyConfig     `yaml:"difficulty"`
}

// GravityFlipPhysics defines physics parameters for Gravity Flip.
type GravityFlipPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// GravityFlipObstacles defines pipe parameters for Gravity Flip.
type GravityFlipObstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// GravityFlipPlayer defines player parameters for Gravity Flip.
type GravityFlipPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityFlipGameplay holds the score-based speed bonus.
type GravityFlipGameplay struct {
	BonusEvery int     `yaml:"bonus_every"` // Points between speed bonuses
	SpeedBonus float64 `yaml:"speed_bonus"` // Added to the speed each time
}

// ColorMatchConfig contains all configuration for the Color Match game.
// Speeds are in cells per tick.
type ColorMatchConfig struct {
	Player     ColorMatchPlayer     `yaml:"player"`
	Targets    ColorMatchTargets    `yaml:"targets"`
	Projectile ColorMatchProjectile `yaml:"projectile"`
	PowerUps   ColorMatchPowerUps   `yaml:"power_ups"`
	Gameplay   ColorMatchGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig     `yaml:"difficulty"`
}

// ColorMatchPlayer sizes the cannon.
type ColorMatchPlayer struct {
	Width int `yaml:"width"`
	Step  int `yaml:"step"` // Columns moved per key press
}

// ColorMatchTargets controls spawning and falling.
type ColorMatchTargets struct {
	Width      int     `yaml:"width"`
	SpawnEvery int     `yaml:"spawn_every"` // Ticks between spawns
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	LevelBoost float64 `yaml:"level_boost"` // Extra fall speed per level above 1
	Drift      float64 `yaml:"drift"`       // Sideways speed from level 2
	ShiftAfter int     `yaml:"shift_after"` // Ticks before a target changes color, level 3
}

// ColorMatchProjectile tunes shots.
type ColorMatchProjectile struct {
	Speed float64 `yaml:"speed"`
}

// ColorMatchPowerUps tunes the pickups dropped alongside targets.
type ColorMatchPowerUps struct {
	Chance   float64 `yaml:"chance"`   // Per spawn
	Speed    float64 `yaml:"speed"`
	Duration int     `yaml:"duration"` // Ticks for rainbow and slow motion
}

// ColorMatchGameplay holds scoring and lives.
type ColorMatchGameplay struct {
	Lives       int `yaml:"lives"`
	HitPoints   int `yaml:"hit_points"`   // Multiplied by combo + 1
	MissPenalty int `yaml:"miss_penalty"` // Lost when a target lands
	LevelEvery  int `yaml:"level_every"`  // Points per level
	MaxLevel    int `yaml:"max_level"`
}

// TimeLoopConfig contains all configuration for the Time Loop game.
type TimeLoopConfig struct {
	Rounds     TimeLoopRounds   `yaml:"rounds"`
	Base       TimeLoopBase     `yaml:"base"`
	Enemies    TimeLoopEnemies  `yaml:"enemies"`
	Player     TimeLoopPlayer   `yaml:"player"`
	Scoring    TimeLoopScoring  `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TimeLoopRounds sets the loop length.
type TimeLoopRounds struct {
	Count   int `yaml:"count"`
	Seconds int `yaml:"seconds"`
}

// TimeLoopBase sets the base's health pool.
type TimeLoopBase struct {
	Health int `yaml:"health"`
	Damage int `yaml:"damage"` // Per enemy that reaches the base
}

// TimeLoopEnemies controls the wave, which repeats every round.
type TimeLoopEnemies struct {
	SpawnEvery int     `yaml:"spawn_every"` // Ticks
	Speed      float64 `yaml:"speed"`       // Rows per tick
	Health     int     `yaml:"health"`
}

// TimeLoopPlayer tunes the defender.
type TimeLoopPlayer struct {
	Cooldown    int `yaml:"cooldown"`     // Ticks between shots
	BulletSpeed int `yaml:"bullet_speed"` // Cells per tick
}

// TimeLoopScoring holds point values.
type TimeLoopScoring struct {
	Kill        int `yaml:"kill"`
	RoundBonus  int `yaml:"round_bonus"`
	HealthBonus int `yaml:"health_bonus"` // Per health point left on a win
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	GapReduction     int     `yaml:"gap_reduction"`
	SpacingReduction int     `yaml:"spacing_reduction"`
}
