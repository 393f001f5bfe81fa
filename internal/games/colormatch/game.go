// Package colormatch implements Color Match, a shooter where a shot only
// destroys a falling target of its own color.
package colormatch

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

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
	playTop    = 2 // HUD and separator
	playFoot   = 2 // Cannon row and palette row
	minWidth   = 30
	minHeight  = 12
	burstTicks = 8
	comboTicks = 60
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

// Game implements the Color Match game logic.
type Game struct {
	override   *config.ColorMatchConfig
	cfg        config.ColorMatchConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	phase    Phase
	paused   bool
	tooSmall bool
	tick     int

	playerX int // Left column of the cannon
	color   int // Selected Palette slot

	targets  []Target
	shots    []Projectile
	powerUps []PowerUp
	bursts   []burst
	spawnIn  int

	rainbowUntil int
	slowUntil    int
	comboUntil   int

	score      int
	best       int
	lives      int
	level      int
	combo      int
	shotsFired int
	shotsHit   int
}

// New creates a Color Match game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.ColorMatchConfig) *Game {
	return &Game{override: &cfg}
}

func init() {
	registry.Register("colormatch", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "colormatch" }

// Title returns the display name.
func (g *Game) Title() string { return "Color Match" }

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
	g.rng = rand.New(rand.NewSource(rc.Seed))

	g.phase = PhaseMenu
	g.paused = false
	g.tick = 0
	g.playerX = (rc.ScreenW - cfg.Player.Width) / 2
	g.color = 0
	g.targets = g.targets[:0]
	g.shots = g.shots[:0]
	g.powerUps = g.powerUps[:0]
	g.bursts = g.bursts[:0]
	g.spawnIn = cfg.Targets.SpawnEvery
	g.rainbowUntil, g.slowUntil, g.comboUntil = 0, 0, 0
	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.level = 1
	g.combo = 0
	g.shotsFired, g.shotsHit = 0, 0
	g.checkSize()
	return nil
}

func (g *Game) loadConfig() (config.ColorMatchConfig, error) {
	if g.override != nil {
		return *g.override, nil
	}
	cfg, err := config.LoadColorMatch(configPath)
	if err != nil {
		return cfg, fmt.Errorf("colormatch: %w", err)
	}
	if difficultyPreset != "" {
		config.ApplyColorMatchPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Resize follows a terminal resize. Falling objects keep their rows and
// are pulled back inside the new width.
func (g *Game) Resize(w, h int) error {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.rng == nil {
		return g.Reset(g.runtime)
	}
	g.checkSize()
	g.playerX = core.Clamp(g.playerX, 0, g.maxPlayerX())
	maxX := float64(max(0, w-g.cfg.Targets.Width))
	for i := range g.targets {
		g.targets[i].X = core.Clamp(g.targets[i].X, 0, maxX)
	}
	for i := range g.powerUps {
		g.powerUps[i].X = core.Clamp(g.powerUps[i].X, 0, max(0, w-1))
	}
	return nil
}

// playH is the number of rows targets fall through.
func (g *Game) playH() int {
	return g.runtime.ScreenH - playTop - playFoot
}

func (g *Game) maxPlayerX() int {
	return max(0, g.runtime.ScreenW-g.cfg.Player.Width)
}

func (g *Game) checkSize() {
	g.tooSmall = g.runtime.ScreenW < minWidth || g.runtime.ScreenH < minHeight
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
	events = g.handleInput(in, events)

	// Targets and shots each move at most one row per tick and are tested
	// after both moves, so a shot cannot pass through a target unseen.
	events = g.moveTargets(events)
	events = g.resolveHits(events)
	g.moveShots()
	events = g.resolveHits(events)
	events = g.movePowerUps(events)
	g.spawn()
	g.expireBursts()

	if every := g.cfg.Gameplay.LevelEvery; every > 0 {
		g.level = min(max(g.cfg.Gameplay.MaxLevel, 1), 1+g.score/every)
	}

	if g.lives <= 0 {
		g.phase = PhaseGameOver
		g.best = max(g.best, g.score)
		events = append(events, core.EventCrash)
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) handleInput(in core.InputFrame, events []core.Event) []core.Event {
	step := g.cfg.Player.Step
	if in.Has(core.ActionLeft) {
		g.playerX -= step
	}
	if in.Has(core.ActionRight) {
		g.playerX += step
	}
	g.playerX = core.Clamp(g.playerX, 0, g.maxPlayerX())

	if slot := in.ColorSlot(); slot >= 0 {
		g.color = slot
	}

	if in.Has(core.ActionPrimary) {
		g.shots = append(g.shots, Projectile{
			X:     g.playerX + g.cfg.Player.Width/2,
			Y:     float64(g.playH()),
			Color: g.color,
		})
		g.shotsFired++
		events = append(events, core.EventShoot)
	}
	return events
}

// moveTargets applies fall, drift and color shifts, then removes targets
// that reached the cannon row. Each landing costs a life.
func (g *Game) moveTargets(events []core.Event) []core.Event {
	scale := g.timeScale()
	maxX := float64(max(0, g.runtime.ScreenW-g.cfg.Targets.Width))

	kept := g.targets[:0]
	for _, t := range g.targets {
		t.Y += t.VY * scale
		t.X += t.VX * scale
		if t.X < 0 {
			t.X = 0
			t.VX = math.Abs(t.VX)
		} else if t.X > maxX {
			t.X = maxX
			t.VX = -math.Abs(t.VX)
		}
		if t.ShiftAt > 0 && g.tick >= t.ShiftAt {
			t.Color = g.otherColor(t.Color)
			t.ShiftAt = 0
		}

		if t.Rect(g.cfg.Targets.Width).Y >= g.playH() {
			g.lives--
			g.combo = 0
			g.score = max(0, g.score-g.cfg.Gameplay.MissPenalty)
			events = append(events, core.EventDamage)
			continue
		}
		kept = append(kept, t)
	}
	g.targets = kept
	return events
}

// otherColor picks a palette slot different from c.
func (g *Game) otherColor(c int) int {
	n := g.rng.Intn(len(Palette) - 1)
	if n >= c {
		n++
	}
	return n
}

// moveShots flies shots upward. A shot leaving the top breaks the combo.
func (g *Game) moveShots() {
	speed := core.Clamp(g.cfg.Projectile.Speed, 0.05, 1)
	kept := g.shots[:0]
	for _, s := range g.shots {
		s.Y -= speed
		if s.Y < 0 {
			g.combo = 0
			continue
		}
		kept = append(kept, s)
	}
	g.shots = kept
}

// resolveHits stops every shot at the first target it overlaps. Only a
// matching color, or any color while rainbow is active, destroys it.
func (g *Game) resolveHits(events []core.Event) []core.Event {
	kept := g.shots[:0]
	for _, s := range g.shots {
		i := g.targetAt(s)
		if i < 0 {
			kept = append(kept, s)
			continue
		}
		t := g.targets[i]
		if t.Color != s.Color && !g.rainbow() {
			g.combo = 0
			events = append(events, core.EventMiss)
			continue
		}

		g.score += g.cfg.Gameplay.HitPoints * (g.combo + 1)
		g.combo++
		g.shotsHit++
		if g.combo > 1 {
			g.comboUntil = g.tick + comboTicks
		}
		r := t.Rect(g.cfg.Targets.Width)
		cx, _ := r.Center()
		g.bursts = append(g.bursts, burst{x: cx, y: r.Y, color: t.Color, until: g.tick + burstTicks})
		g.targets = slices.Delete(g.targets, i, i+1)
		events = append(events, core.EventHit)
	}
	g.shots = kept
	return events
}

func (g *Game) targetAt(s Projectile) int {
	for i, t := range g.targets {
		if t.Rect(g.cfg.Targets.Width).Contains(s.X, s.Row()) {
			return i
		}
	}
	return -1
}

// movePowerUps drops pickups. One landing on the cannon takes effect; the
// rest fall off the bottom.
func (g *Game) movePowerUps(events []core.Event) []core.Event {
	speed := g.cfg.PowerUps.Speed * g.timeScale()
	kept := g.powerUps[:0]
	for _, p := range g.powerUps {
		p.Y += speed
		if int(p.Y) < g.playH() {
			kept = append(kept, p)
			continue
		}
		if p.X >= g.playerX && p.X < g.playerX+g.cfg.Player.Width {
			g.apply(p.Kind)
			events = append(events, core.EventPowerUp)
		}
	}
	g.powerUps = kept
	return events
}

func (g *Game) apply(k PowerUpKind) {
	switch k {
	case PowerRainbow:
		g.rainbowUntil = g.tick + g.cfg.PowerUps.Duration
	case PowerSlow:
		g.slowUntil = g.tick + g.cfg.PowerUps.Duration
	case PowerMultiplier:
		g.score *= 2
	}
}

func (g *Game) rainbow() bool { return g.tick < g.rainbowUntil }

func (g *Game) slow() bool { return g.tick < g.slowUntil }

func (g *Game) timeScale() float64 {
	if g.slow() {
		return 0.5
	}
	return 1
}

// spawn drops a target every SpawnEvery ticks, sometimes with a pickup.
func (g *Game) spawn() {
	g.spawnIn--
	if g.spawnIn > 0 {
		return
	}
	g.spawnIn = max(1, g.cfg.Targets.SpawnEvery)
	g.targets = append(g.targets, g.newTarget())

	if g.rng.Float64() < g.cfg.PowerUps.Chance {
		g.powerUps = append(g.powerUps, PowerUp{
			X:    g.rng.Intn(max(1, g.runtime.ScreenW)),
			Kind: PowerUpKind(g.rng.Intn(int(powerKinds))),
		})
	}
}

// newTarget rolls a target for the current level. Level 2 adds sideways
// drift and level 3 makes targets change color once.
func (g *Game) newTarget() Target {
	tc := g.cfg.Targets
	speed := tc.MinSpeed + g.rng.Float64()*(tc.MaxSpeed-tc.MinSpeed)
	speed += float64(g.level-1) * tc.LevelBoost
	speed = g.difficulty.Speed(speed, g.score, g.tick)

	t := Target{
		X:     float64(g.rng.Intn(max(1, g.runtime.ScreenW-tc.Width+1))),
		VY:    core.Clamp(speed, 0, 1),
		Color: g.rng.Intn(len(Palette)),
	}
	if g.level >= 2 {
		t.VX = tc.Drift
		if g.rng.Intn(2) == 0 {
			t.VX = -t.VX
		}
	}
	if g.level >= 3 && tc.ShiftAfter > 0 {
		t.ShiftAt = g.tick + tc.ShiftAfter
	}
	return t
}

func (g *Game) expireBursts() {
	g.bursts = slices.DeleteFunc(g.bursts, func(b burst) bool { return g.tick >= b.until })
}

// Accuracy returns the share of shots that destroyed a target, in percent.
func (g *Game) Accuracy() float64 {
	return 100 * float64(g.shotsHit) / float64(max(1, g.shotsFired))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}
