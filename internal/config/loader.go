package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadEchoMaze loads Echo Maze configuration.
// Search order: customPath -> ~/.arcade/configs/echomaze.yaml -> ./configs/echomaze.yaml -> embedded default
func LoadEchoMaze(customPath string) (EchoMazeConfig, error) {
	return load("echomaze", customPath, defaultEchoMazeYAML, DefaultEchoMazeConfig)
}

// LoadGravityFlip loads Gravity Flip configuration.
// Search order: customPath -> ~/.arcade/configs/gravityflip.yaml -> ./configs/gravityflip.yaml -> embedded default
func LoadGravityFlip(customPath string) (GravityFlipConfig, error) {
	return load("gravityflip", customPath, defaultGravityFlipYAML, DefaultGravityFlipConfig)
}

// LoadColorMatch loads Color Match configuration.
// Search order: customPath -> ~/.arcade/configs/colormatch.yaml -> ./configs/colormatch.yaml -> embedded default
func LoadColorMatch(customPath string) (ColorMatchConfig, error) {
	return load("colormatch", customPath, defaultColorMatchYAML, DefaultColorMatchConfig)
}

// LoadTimeLoop loads Time Loop configuration.
// Search order: customPath -> ~/.arcade/configs/timeloop.yaml -> ./configs/timeloop.yaml -> embedded default
func LoadTimeLoop(customPath string) (TimeLoopConfig, error) {
	return load("timeloop", customPath, defaultTimeLoopYAML, DefaultTimeLoopConfig)
}

// load walks the search order for <gameID>.yaml. Each file is decoded on
// top of the hardcoded defaults, so partial files only override what they
// mention. Only an explicit customPath can fail the load.
func load[T any](gameID, customPath string, embedded []byte, defaults func() T) (T, error) {
	filename := gameID + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data, defaults)
		if err != nil {
			return defaults(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data, defaults); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(embedded, defaults)
	if err != nil {
		return defaults(), nil
	}
	return cfg, nil
}

func parse[T any](data []byte, defaults func() T) (T, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyEchoMazePreset trades time against traps. Fixed leaves the file as is.
func ApplyEchoMazePreset(cfg *EchoMazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.TimeLimit = 240
		cfg.Entities.Traps = 4
	case DifficultyNormal:
		cfg.Gameplay.TimeLimit = 180
		cfg.Entities.Traps = 0
	case DifficultyHard:
		cfg.Gameplay.TimeLimit = 120
		cfg.Entities.Traps = 14
		cfg.Echo.Cooldown = 120
	}
}

// ApplyGravityFlipPreset modifies the config based on a difficulty preset.
func ApplyGravityFlipPreset(cfg *GravityFlipConfig, preset DifficultyPreset) {
	applyProgression(&cfg.Difficulty, preset)
}

// ApplyColorMatchPreset sets the starting fall speed. Easy also adds lives.
func ApplyColorMatchPreset(cfg *ColorMatchConfig, preset DifficultyPreset) {
	applyProgression(&cfg.Difficulty, preset)
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 8
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
	}
}

// ApplyTimeLoopPreset sets the starting enemy speed and the damage per hit.
func ApplyTimeLoopPreset(cfg *TimeLoopConfig, preset DifficultyPreset) {
	applyProgression(&cfg.Difficulty, preset)
	switch preset {
	case DifficultyEasy:
		cfg.Base.Damage = 5
	case DifficultyHard:
		cfg.Base.Damage = 20
	}
}

func applyProgression(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
