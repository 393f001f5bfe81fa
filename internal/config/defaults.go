package config

import (
	_ "embed"
)

//go:embed defaults/echomaze.yaml
var defaultEchoMazeYAML []byte

//go:embed defaults/gravityflip.yaml
var defaultGravityFlipYAML []byte

//go:embed defaults/colormatch.yaml
var defaultColorMatchYAML []byte

//go:embed defaults/timeloop.yaml
var defaultTimeLoopYAML []byte

// DefaultEchoMazeConfig returns the default Echo Maze configuration.
func DefaultEchoMazeConfig() EchoMazeConfig {
	return EchoMazeConfig{
		Grid: EchoMazeGrid{
			Width:       20,
			Height:      15,
			MaxAttempts: 1000,
		},
		Entities: EchoMazeEntities{
			Keys:  3,
			Coins: 10,
			Traps: 0,
		},
		Echo: EchoMazeEcho{
			Radius:     5,
			PingRadius: 8,
			Cooldown:   60,
		},
		Gameplay: EchoMazeGameplay{
			TimeLimit:      180,
			FootprintTicks: 51,
		},
		Scoring: EchoMazeScoring{
			Coin: 10,
			Key:  25,
			Win:  100,
		},
	}
}

// DefaultGravityFlipConfig returns the default Gravity Flip configuration.
func DefaultGravityFlipConfig() GravityFlipConfig {
	return GravityFlipConfig{
		Physics: GravityFlipPhysics{
			Gravity:      0.035,
			MaxFallSpeed: 1.0,
			BaseSpeed:    0.5,
		},
		Obstacles: GravityFlipObstacles{
			PipeWidth:    5,
			PipeSpacing:  30,
			MinGapSize:   7,
			MaxGapSize:   10,
			TopMargin:    2,
			BottomMargin: 2,
		},
		Player: GravityFlipPlayer{
			X:      10,
			Width:  2,
			Height: 1,
		},
		Gameplay: GravityFlipGameplay{
			BonusEvery: 15,
			SpeedBonus: 0.05,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     3,
				SpacingReduction: 10,
			},
		},
	}
}

// DefaultColorMatchConfig returns the default Color Match configuration.
func DefaultColorMatchConfig() ColorMatchConfig {
	return ColorMatchConfig{
		Player: ColorMatchPlayer{
			Width: 6,
			Step:  2,
		},
		Targets: ColorMatchTargets{
			Width:      3,
			SpawnEvery: 60,
			MinSpeed:   0.03,
			MaxSpeed:   0.08,
			LevelBoost: 0.015,
			Drift:      0.2,
			ShiftAfter: 300,
		},
		Projectile: ColorMatchProjectile{
			Speed: 0.5,
		},
		PowerUps: ColorMatchPowerUps{
			Chance:   0.05,
			Speed:    0.07,
			Duration: 300,
		},
		Gameplay: ColorMatchGameplay{
			Lives:       5,
			HitPoints:   10,
			MissPenalty: 10,
			LevelEvery:  200,
			MaxLevel:    3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultTimeLoopConfig returns the default Time Loop configuration.
func DefaultTimeLoopConfig() TimeLoopConfig {
	return TimeLoopConfig{
		Rounds: TimeLoopRounds{
			Count:   3,
			Seconds: 30,
		},
		Base: TimeLoopBase{
			Health: 100,
			Damage: 10,
		},
		Enemies: TimeLoopEnemies{
			SpawnEvery: 90,
			Speed:      0.06,
			Health:     2,
		},
		Player: TimeLoopPlayer{
			Cooldown:    8,
			BulletSpeed: 1,
		},
		Scoring: TimeLoopScoring{
			Kill:        10,
			RoundBonus:  50,
			HealthBonus: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 5400,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "echomaze":
		return defaultEchoMazeYAML
	case "gravityflip":
		return defaultGravityFlipYAML
	case "colormatch":
		return defaultColorMatchYAML
	case "timeloop":
		return defaultTimeLoopYAML
	default:
		return nil
	}
}
