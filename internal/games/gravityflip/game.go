// Package gravityflip implements Gravity Flip, a side-scroller where the
// only control reverses gravity to thread the player through pipe gaps.
package gravityflip

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// Phase is the session state.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
	PhaseTooSmall Phase = "paused_small_window"
)

const (
	playTop   = 3 // HUD, separator, ceiling
	minWidth  = 40
	trailSize = 6
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the Gravity Flip game logic.
type Game struct {
	override   *config.GravityFlipConfig
	cfg        config.GravityFlipConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	pipes      *PipeManager

	phase    Phase
	paused   bool
	tooSmall bool
	tick     int

	playerY   float64 // Top of the hitbox, in play-area rows
	playerVel float64
	flipped   bool // Gravity pulls up when set
	trail     []float64

	score int
	best  int
	speed float64
}

// New creates a Gravity Flip game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.GravityFlipConfig) *Game {
	return &Game{override: &cfg}
}

func init() {
	registry.Register("gravityflip", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "gravityflip" }

// Title returns the display name.
func (g *Game) Title() string { return "Gravity Flip" }

// SetHighScore sets the best score shown in the menu and on game over.
func (g *Game) SetHighScore(score int) {
	g.best = max(g.best, score)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.runtime = rc
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.phase = PhaseMenu
	g.paused = false
	g.tick = 0
	g.score = 0
	g.flipped = false
	g.playerVel = 0
	g.playerY = float64(g.playH()-cfg.Player.Height) / 2
	g.trail = g.trail[:0]
	g.speed = cfg.Physics.BaseSpeed

	if g.pipes == nil {
		g.pipes = NewPipeManager(rc.Seed, rc.ScreenW, g.playH(), &g.cfg, g.difficulty)
	} else {
		g.pipes.cfg = &g.cfg
		g.pipes.difficulty = g.difficulty
		g.pipes.UpdateScreenSize(rc.ScreenW, g.playH())
		g.pipes.Reset(rc.Seed)
	}
	g.checkSize()
	return nil
}

func (g *Game) loadConfig() (config.GravityFlipConfig, error) {
	if g.override != nil {
		return *g.override, nil
	}
	cfg, err := config.LoadGravityFlip(configPath)
	if err != nil {
		return cfg, fmt.Errorf("gravityflip: %w", err)
	}
	if difficultyPreset != "" {
		config.ApplyGravityFlipPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Resize follows a terminal resize. Pipes already on screen are kept.
func (g *Game) Resize(w, h int) error {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.pipes == nil {
		return g.Reset(g.runtime)
	}
	g.pipes.UpdateScreenSize(w, g.playH())
	g.checkSize()
	if !g.tooSmall {
		g.playerY = core.Clamp(g.playerY, 0, g.floor())
	}
	return nil
}

// playH is the number of rows between ceiling and floor.
func (g *Game) playH() int {
	return g.runtime.ScreenH - playTop - 1
}

// floor is the lowest valid playerY.
func (g *Game) floor() float64 {
	return float64(g.playH() - g.cfg.Player.Height)
}

func (g *Game) checkSize() {
	obs := g.cfg.Obstacles
	need := obs.MaxGapSize + obs.TopMargin + obs.BottomMargin
	g.tooSmall = g.runtime.ScreenW < minWidth || g.playH() < need
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	switch g.phase {
	case PhaseMenu:
		if in.Has(core.ActionPrimary) || in.Has(core.ActionConfirm) {
			g.phase = PhasePlaying
			events = append(events, core.EventStart)
		}
		return core.StepResult{State: g.State(), Events: events}
	case PhaseGameOver:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if in.Has(core.ActionPrimary) {
		g.flipped = !g.flipped
		events = append(events, core.EventFlip)
	}

	dir := 1.0
	if g.flipped {
		dir = -1
	}
	limit := g.cfg.Physics.MaxFallSpeed
	g.playerVel = core.Clamp(g.playerVel+g.cfg.Physics.Gravity*dir, -limit, limit)
	g.playerY += g.playerVel

	// Edges stop the player without ending the run.
	if g.playerY <= 0 {
		g.playerY = 0
		g.playerVel = 0
	}
	if bottom := g.floor(); g.playerY >= bottom {
		g.playerY = bottom
		g.playerVel = 0
	}

	g.trail = append(g.trail, g.playerY)
	if len(g.trail) > trailSize {
		g.trail = g.trail[1:]
	}

	g.speed = g.currentSpeed()
	passed := g.pipes.Update(g.cfg.Player.X, g.speed, g.score, g.tick)
	for range passed {
		g.score++
		events = append(events, core.EventScore)
	}

	if g.pipes.Collides(g.playerRect()) {
		g.phase = PhaseGameOver
		g.best = max(g.best, g.score)
		events = append(events, core.EventCrash)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// currentSpeed combines difficulty scaling with a flat bonus for every
// BonusEvery points.
func (g *Game) currentSpeed() float64 {
	speed := g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, g.tick)
	if every := g.cfg.Gameplay.BonusEvery; every > 0 {
		speed += float64(g.score/every) * g.cfg.Gameplay.SpeedBonus
	}
	return speed
}

func (g *Game) playerRect() core.Rect {
	return core.NewRect(g.cfg.Player.X, int(g.playerY), g.cfg.Player.Width, g.cfg.Player.Height)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}
