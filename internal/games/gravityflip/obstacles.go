package gravityflip

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Pipe is a pair of columns with a gap between them. Y values are rows of
// the play area, not the screen.
type Pipe struct {
	X         float64
	GapY      int
	GapHeight int
	Passed    bool
}

// Col returns the leftmost screen column the pipe occupies.
func (p Pipe) Col() int {
	return int(math.Floor(p.X))
}

// TopRect returns the collision rectangle above the gap.
func (p Pipe) TopRect(width int) core.Rect {
	return core.NewRect(p.Col(), 0, width, p.GapY)
}

// BottomRect returns the collision rectangle below the gap.
func (p Pipe) BottomRect(width, playH int) core.Rect {
	bottom := p.GapY + p.GapHeight
	return core.NewRect(p.Col(), bottom, width, playH-bottom)
}

// PipeManager spawns, scrolls and retires pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	screenW    int
	playH      int
	cfg        *config.GravityFlipConfig
	difficulty *config.DifficultyManager
}

// NewPipeManager creates a pipe manager seeded for deterministic gaps.
func NewPipeManager(seed int64, screenW, playH int, cfg *config.GravityFlipConfig, diff *config.DifficultyManager) *PipeManager {
	pm := &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		screenW:    screenW,
		playH:      playH,
		cfg:        cfg,
		difficulty: diff,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// UpdateScreenSize records new dimensions. Existing pipes keep their gaps.
func (pm *PipeManager) UpdateScreenSize(screenW, playH int) {
	pm.screenW = screenW
	pm.playH = playH
}

// Update scrolls pipes left by speed columns and spawns new ones.
// It returns how many pipes the player cleared this tick.
func (pm *PipeManager) Update(playerX int, speed float64, score, ticks int) int {
	width := pm.cfg.Obstacles.PipeWidth
	passed := 0

	for i := range pm.pipes {
		pm.pipes[i].X -= speed
		if !pm.pipes[i].Passed && pm.pipes[i].Col()+width < playerX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.Col()+width > 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept

	spacing := pm.difficulty.Spacing(pm.cfg.Obstacles.PipeSpacing, score, ticks)
	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X < float64(pm.screenW-spacing) {
		pm.spawn(score, ticks)
	}
	return passed
}

func (pm *PipeManager) spawn(score, ticks int) {
	obs := pm.cfg.Obstacles
	minGap := obs.MinGapSize
	maxGap := max(minGap, pm.difficulty.GapSize(obs.MaxGapSize, score, ticks))

	gap := minGap + pm.rng.Intn(maxGap-minGap+1)

	lo := obs.TopMargin
	hi := max(lo, pm.playH-obs.BottomMargin-gap)
	gapY := lo + pm.rng.Intn(hi-lo+1)

	pm.pipes = append(pm.pipes, Pipe{
		X:         float64(pm.screenW),
		GapY:      gapY,
		GapHeight: gap,
	})
}

// Pipes returns the live pipes, oldest first.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// Collides reports whether r overlaps any pipe.
func (pm *PipeManager) Collides(r core.Rect) bool {
	width := pm.cfg.Obstacles.PipeWidth
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect(width)) || r.Intersects(p.BottomRect(width, pm.playH)) {
			return true
		}
	}
	return false
}
