// Package echomaze implements Echo Maze: explore a dark labyrinth by sonar,
// gather every key, then reach the treasure before time runs out.
package echomaze

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/games/echomaze/maze"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// Phase is the session state.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
	PhaseWin      Phase = "win"
)

const (
	hudHeight = 2
	footer    = 1
	cellWidth = 2 // Terminal columns per maze cell
	minCells  = 5
)

// Package-level settings applied on the next Reset, set by the CLI.
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

type footprint struct {
	pos maze.Position
	age int
}

// Game implements the Echo Maze game.
type Game struct {
	override *config.EchoMazeConfig
	cfg      config.EchoMazeConfig
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	builder  *maze.Builder
	level    *maze.Level

	phase    Phase
	paused   bool
	tooSmall bool
	tick     uint64

	player    maze.Position
	keys      int
	coins     int
	score     int
	timeLeft  int // Ticks
	echoTimer int
	radius    int
	cause     string

	visible    []bool
	visited    []bool
	footprints []footprint

	offsetX int
	offsetY int
}

// New creates an Echo Maze game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.EchoMazeConfig) *Game {
	return &Game{override: &cfg}
}

func init() {
	registry.Register("echomaze", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "echomaze" }

// Title returns the display name.
func (g *Game) Title() string { return "Echo Maze" }

// Reset builds a fresh maze sized to the screen. Builder failures are
// returned as is so callers can refuse to start the session.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.builder = maze.NewBuilder(g.rng)
	g.builder.SetMaxAttempts(cfg.Grid.MaxAttempts)

	g.level = nil
	g.phase = PhaseMenu
	g.paused = false
	g.tick = 0
	g.keys, g.coins, g.score = 0, 0, 0
	g.timeLeft = rc.TicksFor(cfg.Gameplay.TimeLimit)
	g.echoTimer = 0
	g.radius = cfg.Echo.Radius
	g.cause = ""
	g.footprints = g.footprints[:0]

	w, h := g.fitGrid()
	if w < minCells || h < minCells {
		g.tooSmall = true
		return nil
	}
	g.tooSmall = false

	level, err := g.builder.Build(w, h, maze.Counts{
		Keys:  cfg.Entities.Keys,
		Coins: cfg.Entities.Coins,
		Traps: cfg.Entities.Traps,
	})
	if err != nil {
		return fmt.Errorf("echomaze: %w", err)
	}
	g.level = level
	g.player = level.Start
	g.visible = make([]bool, w*h)
	g.visited = make([]bool, w*h)
	g.layout()
	g.updateVisibility()
	return nil
}

func (g *Game) loadConfig() (config.EchoMazeConfig, error) {
	if g.override != nil {
		return *g.override, nil
	}
	cfg, err := config.LoadEchoMaze(configPath)
	if err != nil {
		return cfg, fmt.Errorf("echomaze: %w", err)
	}
	if difficultyPreset != "" {
		config.ApplyEchoMazePreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Resize adapts to a new terminal size without rebuilding a maze that is
// already in play.
func (g *Game) Resize(w, h int) error {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.level == nil {
		return g.Reset(g.runtime)
	}
	g.layout()
	return nil
}

// fitGrid keeps the configured size when the screen holds it. A dimension
// that has to shrink becomes the largest odd size that fits.
func (g *Game) fitGrid() (int, int) {
	return fitDim(g.cfg.Grid.Width, g.runtime.ScreenW/cellWidth),
		fitDim(g.cfg.Grid.Height, g.runtime.ScreenH-hudHeight-footer)
}

func fitDim(want, avail int) int {
	if want <= avail {
		return want
	}
	return core.Odd(avail)
}

// layout centers the grid and flags screens too small for it.
func (g *Game) layout() {
	gw, gh := g.level.Grid.Width(), g.level.Grid.Height()
	g.tooSmall = gw*cellWidth > g.runtime.ScreenW || gh+hudHeight+footer > g.runtime.ScreenH
	g.offsetX = (g.runtime.ScreenW - gw*cellWidth) / 2
	g.offsetY = hudHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.tooSmall || g.level == nil {
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
	case PhaseGameOver, PhaseWin:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPrimary) && g.echoTimer == 0 {
		g.echoTimer = g.cfg.Echo.Cooldown
		g.radius = g.cfg.Echo.PingRadius
		events = append(events, core.EventEcho)
	}

	if dx, dy := in.Direction(); dx != 0 || dy != 0 {
		events = g.move(dx, dy, events)
		if g.phase != PhasePlaying {
			g.updateVisibility()
			return core.StepResult{State: g.State(), Events: events}
		}
	}

	if g.echoTimer > 0 {
		g.echoTimer--
		if g.echoTimer == 0 {
			g.radius = g.cfg.Echo.Radius
		}
	}

	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.phase = PhaseGameOver
		g.cause = "The echoes fell silent"
		events = append(events, core.EventTimeout)
	}

	g.ageFootprints()
	g.updateVisibility()
	return core.StepResult{State: g.State(), Events: events}
}

// move walks one cell if the target is open floor, then resolves pickups
// and traps on the new cell.
func (g *Game) move(dx, dy int, events []core.Event) []core.Event {
	target := g.player.Add(dx, dy)
	if !g.level.Grid.IsFloor(target) {
		return events
	}
	g.player = target
	g.footprints = append(g.footprints, footprint{pos: target})
	events = append(events, core.EventStep)

	if i := g.level.CollectibleAt(target); i >= 0 && !g.level.Collectibles[i].Collected {
		c := &g.level.Collectibles[i]
		switch c.Kind {
		case maze.Key:
			c.Collected = true
			g.keys++
			g.score += g.cfg.Scoring.Key
			events = append(events, core.EventKey)
		case maze.Coin:
			c.Collected = true
			g.coins++
			g.score += g.cfg.Scoring.Coin
			events = append(events, core.EventCoin)
		case maze.Treasure:
			if g.keys == g.level.Count(maze.Key) {
				c.Collected = true
				g.score += g.cfg.Scoring.Win + g.secondsLeft()
				g.phase = PhaseWin
				events = append(events, core.EventTreasure)
			}
		}
	}

	if i := g.level.TrapAt(target); i >= 0 && g.level.Traps[i].Active {
		g.phase = PhaseGameOver
		if g.level.Traps[i].Kind == maze.Pit {
			g.cause = "You fell into a pit"
		} else {
			g.cause = "You stepped on spikes"
		}
		events = append(events, core.EventTrap)
	}
	return events
}

func (g *Game) ageFootprints() {
	kept := g.footprints[:0]
	for _, f := range g.footprints {
		f.age++
		if f.age < g.cfg.Gameplay.FootprintTicks {
			kept = append(kept, f)
		}
	}
	g.footprints = kept
}

// updateVisibility lights every cell within the current radius (Euclidean)
// and remembers the player's cell.
func (g *Game) updateVisibility() {
	grid := g.level.Grid
	w := grid.Width()
	clear(g.visible)
	g.visited[g.player.Y*w+g.player.X] = true

	r := g.radius
	for y := max(0, g.player.Y-r); y < min(grid.Height(), g.player.Y+r+1); y++ {
		for x := max(0, g.player.X-r); x < min(w, g.player.X+r+1); x++ {
			dx, dy := x-g.player.X, y-g.player.Y
			if dx*dx+dy*dy <= r*r {
				g.visible[y*w+x] = true
			}
		}
	}
}

func (g *Game) isVisible(p maze.Position) bool {
	return g.level.Grid.In(p) && g.visible[p.Y*g.level.Grid.Width()+p.X]
}

func (g *Game) isVisited(p maze.Position) bool {
	return g.level.Grid.In(p) && g.visited[p.Y*g.level.Grid.Width()+p.X]
}

func (g *Game) secondsLeft() int {
	return g.timeLeft / g.rate()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver || g.phase == PhaseWin,
		Won:      g.phase == PhaseWin,
		Paused:   g.paused,
	}
}

// Level exposes the current maze, or nil before one is built.
func (g *Game) Level() *maze.Level { return g.level }
