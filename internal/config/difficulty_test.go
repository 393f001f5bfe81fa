package config

import "testing"

func scoreDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling: ScalingConfig{
			SpeedMultiplier:  1.0,
			GapReduction:     10,
			SpacingReduction: 40,
		},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(scoreDifficulty())

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score, 0); got != tt.want {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := scoreDifficulty()
	cfg.InitialLevel = 0.5
	d := NewDifficultyManager(cfg)
	if got := d.Level(50, 0); got != 0.75 {
		t.Errorf("Level(50) = %v, want 0.75", got)
	}

	cfg.InitialLevel = 3
	if got := NewDifficultyManager(cfg).Level(0, 0); got != 1 {
		t.Errorf("initial level should clamp to 1, got %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := scoreDifficulty()
	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	d := NewDifficultyManager(cfg)
	if d.IsEnabled() {
		t.Error("IsEnabled should be false")
	}
	if got := d.Level(1000, 1000); got != 0.3 {
		t.Errorf("disabled Level = %v, want 0.3", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	cfg := scoreDifficulty()
	cfg.Progression = ProgressionConfig{Type: "time", MaxAt: 600}
	d := NewDifficultyManager(cfg)
	if got := d.Level(1000, 300); got != 0.5 {
		t.Errorf("Level at 300 ticks = %v, want 0.5", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(scoreDifficulty())

	if got := d.Speed(2.0, 100, 0); got != 4.0 {
		t.Errorf("Speed at max = %v, want 4", got)
	}
	if got := d.GapSize(12, 100, 0); got != MinGapSize {
		t.Errorf("GapSize at max = %d, want floor %d", got, MinGapSize)
	}
	if got := d.GapSize(12, 0, 0); got != 12 {
		t.Errorf("GapSize at start = %d, want 12", got)
	}
	if got := d.Spacing(50, 100, 0); got != MinSpacing {
		t.Errorf("Spacing at max = %d, want floor %d", got, MinSpacing)
	}
	if got := d.Spacing(50, 50, 0); got != 30 {
		t.Errorf("Spacing at half = %d, want 30", got)
	}
}
