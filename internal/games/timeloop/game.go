// Package timeloop implements Time Loop, a base-defense game played over a
// fixed number of timed rounds. Each new round replays the same enemy wave
// alongside echoes that repeat the player's moves from earlier rounds.
package timeloop

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
	PhaseSummary  Phase = "round_summary"
	PhaseGameOver Phase = "game_over"
	PhaseTooSmall Phase = "paused_small_window"
)

const (
	playTop     = 2 // HUD and separator
	minWidth    = 40
	minHeight   = 14
	baseWidth   = 3
	noticeTicks = 120
	glitchTicks = 50
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

// Game implements the Time Loop game logic.
type Game struct {
	override   *config.TimeLoopConfig
	cfg        config.TimeLoopConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	phase    Phase
	paused   bool
	tooSmall bool
	won      bool
	tick     int // Ticks into the current round
	elapsed  int // Play ticks across all rounds

	round     int // 0-based
	ticksLeft int
	health    int
	score     int
	best      int

	player    Defender
	echoes    []Defender
	recording []move
	tracks    [][]move

	enemies []Enemy
	bullets []Bullet
	spawnIn int
	stats   RoundStats

	notice      string
	noticeUntil int
	glitchUntil int
}

// New creates a Time Loop game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.TimeLoopConfig) *Game {
	return &Game{override: &cfg}
}

func init() {
	registry.Register("timeloop", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "timeloop" }

// Title returns the display name.
func (g *Game) Title() string { return "Time Loop" }

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
	g.rewind()
	g.phase = PhaseMenu
	return nil
}

// rewind clears the session back to round one with the current config.
func (g *Game) rewind() {
	g.paused = false
	g.won = false
	g.elapsed = 0
	g.round = 0
	g.health = g.cfg.Base.Health
	g.score = 0
	g.tracks = nil
	g.notice, g.noticeUntil = "", 0
	g.glitchUntil = 0
	g.checkSize()
	g.startRound()
}

func (g *Game) loadConfig() (config.TimeLoopConfig, error) {
	if g.override != nil {
		return *g.override, nil
	}
	cfg, err := config.LoadTimeLoop(configPath)
	if err != nil {
		return cfg, fmt.Errorf("timeloop: %w", err)
	}
	if difficultyPreset != "" {
		config.ApplyTimeLoopPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// startRound rewinds the world. The wave RNG is reseeded so every loop
// sends the same enemies at the same times; recorded rounds come back as
// echoes.
func (g *Game) startRound() {
	g.rng = rand.New(rand.NewSource(g.runtime.Seed))
	g.tick = 0
	g.ticksLeft = g.runtime.TicksFor(g.cfg.Rounds.Seconds)
	g.enemies = g.enemies[:0]
	g.bullets = g.bullets[:0]
	g.spawnIn = max(1, g.cfg.Enemies.SpawnEvery)
	g.stats = RoundStats{}

	g.player = g.newDefender(nil)
	g.recording = nil
	g.echoes = g.echoes[:0]
	for _, tr := range g.tracks {
		g.echoes = append(g.echoes, g.newDefender(tr))
	}
	if g.round > 0 {
		g.glitchUntil = g.elapsed + glitchTicks
	}
}

// newDefender places a defender just above the base, facing up.
func (g *Game) newDefender(track []move) Defender {
	cx, cy := g.base().Center()
	return Defender{X: cx, Y: max(0, cy-2), FaceY: -1, track: track}
}

// Resize follows a terminal resize. The base re-centers and everything
// else is pulled back inside the play area.
func (g *Game) Resize(w, h int) error {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.rng == nil {
		return g.Reset(g.runtime)
	}
	g.checkSize()
	g.clampDefender(&g.player)
	for i := range g.echoes {
		g.clampDefender(&g.echoes[i])
	}
	for i := range g.enemies {
		g.enemies[i].X = core.Clamp(g.enemies[i].X, 0, float64(max(0, w-1)))
		g.enemies[i].Y = core.Clamp(g.enemies[i].Y, 0, float64(max(0, g.playH()-1)))
	}
	return nil
}

func (g *Game) clampDefender(d *Defender) {
	d.X = core.Clamp(d.X, 0, max(0, g.runtime.ScreenW-1))
	d.Y = core.Clamp(d.Y, 0, max(0, g.playH()-1))
}

// playH is the number of rows below the HUD.
func (g *Game) playH() int {
	return g.runtime.ScreenH - playTop
}

// base returns the cells of the base, centered in the play area.
func (g *Game) base() core.Rect {
	return core.NewRect((g.runtime.ScreenW-baseWidth)/2, g.playH()/2, baseWidth, 1)
}

func (g *Game) checkSize() {
	g.tooSmall = g.runtime.ScreenW < minWidth || g.runtime.ScreenH < minHeight
}

func (g *Game) announce(text string) {
	g.notice = text
	g.noticeUntil = g.elapsed + noticeTicks
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
			g.announce("Time loop initiated")
			events = append(events, core.EventStart)
		}
		return core.StepResult{State: g.State(), Events: events}
	case PhaseSummary:
		if in.Has(core.ActionPrimary) || in.Has(core.ActionConfirm) {
			g.round++
			g.startRound()
			g.phase = PhasePlaying
			g.announce("Time loop reset")
			events = append(events, core.EventRound)
		}
		return core.StepResult{State: g.State(), Events: events}
	case PhaseGameOver:
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		if in.Has(core.ActionRestart) {
			g.restart()
			events = append(events, core.EventStart)
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	g.tick++
	g.elapsed++

	dx, dy := in.Direction()
	mv := move{dx: dx, dy: dy, fire: in.Has(core.ActionPrimary)}
	g.recording = append(g.recording, mv)
	events = g.act(&g.player, mv, events)
	for i := range g.echoes {
		e := &g.echoes[i]
		if g.tick <= len(e.track) {
			events = g.act(e, e.track[g.tick-1], events)
		}
	}

	events = g.moveBullets(events)
	events = g.moveEnemies(events)
	g.spawn()
	g.ticksLeft--

	switch {
	case g.health <= 0:
		g.health = 0
		g.phase = PhaseGameOver
		g.best = max(g.best, g.score)
		events = append(events, core.EventCrash)
	case g.ticksLeft <= 0:
		events = g.endRound(events)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// restart rewinds to the first round and drops straight into play.
func (g *Game) restart() {
	g.rewind()
	g.phase = PhasePlaying
	g.announce("Time loop initiated")
}

// act applies one tick of input to a defender. Defenders cannot walk into
// the base; firing waits for the cooldown.
func (g *Game) act(d *Defender, mv move, events []core.Event) []core.Event {
	if mv.dx != 0 || mv.dy != 0 {
		d.FaceX, d.FaceY = mv.dx, mv.dy
		nx := core.Clamp(d.X+mv.dx, 0, g.runtime.ScreenW-1)
		ny := core.Clamp(d.Y+mv.dy, 0, g.playH()-1)
		if !g.base().Contains(nx, ny) {
			d.X, d.Y = nx, ny
		}
	}

	if d.cooldown > 0 {
		d.cooldown--
	}
	if !mv.fire || d.cooldown > 0 {
		return events
	}
	d.cooldown = g.cfg.Player.Cooldown
	echo := d.track != nil
	g.bullets = append(g.bullets, Bullet{X: d.X, Y: d.Y, DX: d.FaceX, DY: d.FaceY, Echo: echo})
	if !echo {
		g.stats.ShotsFired++
		events = append(events, core.EventShoot)
	}
	return events
}

// moveBullets advances bullets one cell at a time so none skips over an
// enemy. Horizontal bullets cover two columns per row of vertical travel.
func (g *Game) moveBullets(events []core.Event) []core.Event {
	speed := max(1, g.cfg.Player.BulletSpeed)
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		steps := speed
		if b.DY == 0 {
			steps *= 2
		}
		alive := true
		for range steps {
			b.X += b.DX
			b.Y += b.DY
			if b.X < 0 || b.X >= g.runtime.ScreenW || b.Y < 0 || b.Y >= g.playH() {
				alive = false
				break
			}
			if i := g.enemyAt(b.X, b.Y); i >= 0 {
				events = g.damage(i, b.Echo, events)
				alive = false
				break
			}
		}
		if alive {
			kept = append(kept, b)
		}
	}
	g.bullets = kept
	return events
}

func (g *Game) enemyAt(x, y int) int {
	for i, e := range g.enemies {
		if ex, ey := e.Cell(); ex == x && ey == y {
			return i
		}
	}
	return -1
}

func (g *Game) damage(i int, echo bool, events []core.Event) []core.Event {
	e := &g.enemies[i]
	e.HP--
	if !echo {
		g.stats.DamageDealt++
	}
	if e.HP > 0 {
		return events
	}
	g.enemies = slices.Delete(g.enemies, i, i+1)
	g.score += g.cfg.Scoring.Kill
	if !echo {
		g.stats.Defeated++
	}
	return append(events, core.EventHit)
}

// moveEnemies walks every enemy toward the base center. Distances count a
// column as half a row so enemies cross the screen at an even pace.
func (g *Game) moveEnemies(events []core.Event) []core.Event {
	speed := g.difficulty.Speed(g.cfg.Enemies.Speed, g.score, g.elapsed)
	base := g.base()
	cx, cy := base.Center()
	bx, by := float64(cx), float64(cy)

	kept := g.enemies[:0]
	for _, e := range g.enemies {
		dx, dy := bx-e.X, by-e.Y
		if dist := math.Hypot(dx/2, dy); dist > 0 {
			e.X += dx / dist * speed
			e.Y += dy / dist * speed
		}
		x, y := e.Cell()
		if base.Contains(x, y) || math.Hypot((bx-e.X)/2, by-e.Y) < 1 {
			g.health -= g.cfg.Base.Damage
			events = append(events, core.EventDamage)
			continue
		}
		kept = append(kept, e)
	}
	g.enemies = kept
	return events
}

// spawn sends an enemy from a random edge every SpawnEvery ticks.
func (g *Game) spawn() {
	g.spawnIn--
	if g.spawnIn > 0 {
		return
	}
	g.spawnIn = max(1, g.cfg.Enemies.SpawnEvery)

	w, h := max(1, g.runtime.ScreenW), max(1, g.playH())
	var x, y int
	switch g.rng.Intn(4) {
	case 0:
		x, y = g.rng.Intn(w), 0
	case 1:
		x, y = w-1, g.rng.Intn(h)
	case 2:
		x, y = g.rng.Intn(w), h-1
	default:
		x, y = 0, g.rng.Intn(h)
	}
	g.enemies = append(g.enemies, Enemy{X: float64(x), Y: float64(y), HP: max(1, g.cfg.Enemies.Health)})
}

// endRound files the round's input as a new echo. The last round ends the
// game in a win with a bonus for the health left.
func (g *Game) endRound(events []core.Event) []core.Event {
	g.tracks = append(g.tracks, g.recording)
	g.recording = nil
	g.score += g.cfg.Scoring.RoundBonus
	events = append(events, core.EventRound)

	if g.round+1 >= max(1, g.cfg.Rounds.Count) {
		g.score += g.health * g.cfg.Scoring.HealthBonus
		g.won = true
		g.phase = PhaseGameOver
		g.best = max(g.best, g.score)
		return events
	}
	g.phase = PhaseSummary
	return events
}

// Stats returns the counters for the current or just-finished round.
func (g *Game) Stats() RoundStats { return g.stats }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}
