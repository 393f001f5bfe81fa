package colormatch

import (
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

var runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// quietConfig never spawns on its own, so tests place every object.
func quietConfig() config.ColorMatchConfig {
	cfg := config.DefaultColorMatchConfig()
	cfg.Targets.SpawnEvery = 1 << 20
	cfg.PowerUps.Chance = 0
	return cfg
}

// newPlaying returns a game past the title screen.
func newPlaying(t *testing.T, cfg config.ColorMatchConfig) *Game {
	t.Helper()
	g := NewWithConfig(cfg)
	if err := g.Reset(runtime); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	g.Step(press(core.ActionPrimary))
	if g.phase != PhasePlaying {
		t.Fatalf("phase = %s, expected playing", g.phase)
	}
	return g
}

// muzzle is the column shots leave from.
func muzzle(g *Game) int { return g.playerX + g.cfg.Player.Width/2 }

// stepUntil steps with empty input until done reports true, collecting
// events. It fails the test after limit ticks.
func stepUntil(t *testing.T, g *Game, limit int, done func() bool) []core.Event {
	t.Helper()
	var events []core.Event
	for range limit {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
		if done() {
			return events
		}
	}
	t.Fatalf("condition not reached in %d ticks: %+v", limit, g.Snapshot())
	return nil
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("colormatch") {
		t.Fatal("colormatch not registered")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := NewWithConfig(config.DefaultColorMatchConfig())
		if err := g.Reset(runtime); err != nil {
			t.Fatal(err)
		}
		g.Step(press(core.ActionPrimary))
		keys := []core.Action{core.ActionColor1, core.ActionColor2, core.ActionColor3, core.ActionColor4}
		for i := range 2400 {
			in := core.NewInputFrame()
			switch {
			case i%9 == 0:
				in.Set(core.ActionPrimary)
			case i%31 == 0:
				in.Set(keys[(i/31)%len(keys)])
			case i%17 == 0:
				in.Set(core.ActionLeft)
			case i%13 == 0:
				in.Set(core.ActionRight)
			}
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("runs diverged:\n%+v\n%+v", a, b)
	}
}

func TestMenuWaitsForPrimary(t *testing.T) {
	g := NewWithConfig(config.DefaultColorMatchConfig())
	if err := g.Reset(runtime); err != nil {
		t.Fatal(err)
	}
	for range 120 {
		g.Step(press(core.ActionLeft))
	}
	if s := g.Snapshot(); s.Phase != PhaseMenu || s.Tick != 0 || s.Targets != 0 {
		t.Fatalf("menu advanced: %+v", s)
	}
	res := g.Step(press(core.ActionPrimary))
	if g.phase != PhasePlaying || !slices.Contains(res.Events, core.EventStart) {
		t.Errorf("phase = %s, events %v", g.phase, res.Events)
	}
	if g.shotsFired != 0 {
		t.Error("the start key should not fire")
	}
}

func TestMoveAndPickColor(t *testing.T) {
	g := newPlaying(t, quietConfig())
	x := g.playerX

	g.Step(press(core.ActionRight))
	if g.playerX != x+g.cfg.Player.Step {
		t.Errorf("playerX = %d, want %d", g.playerX, x+g.cfg.Player.Step)
	}
	for range 100 {
		g.Step(press(core.ActionLeft))
	}
	if g.playerX != 0 {
		t.Errorf("playerX = %d, want clamped to 0", g.playerX)
	}

	g.Step(press(core.ActionColor3))
	if g.color != 2 {
		t.Errorf("color = %d after key 3, want 2", g.color)
	}
	res := g.Step(press(core.ActionPrimary))
	if !slices.Contains(res.Events, core.EventShoot) || g.shots[0].Color != 2 {
		t.Errorf("shot not fired in the selected color: %v %+v", res.Events, g.shots)
	}
}

func TestMatchingShotScores(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.color = 1
	g.targets = []Target{{X: float64(muzzle(g) - 1), Y: 5, Color: 1}}

	g.Step(press(core.ActionPrimary))
	events := stepUntil(t, g, 60, func() bool { return len(g.targets) == 0 })

	if !slices.Contains(events, core.EventHit) {
		t.Errorf("events %v lack a hit", events)
	}
	if g.score != g.cfg.Gameplay.HitPoints || g.shotsHit != 1 || g.combo != 1 {
		t.Errorf("score=%d hits=%d combo=%d", g.score, g.shotsHit, g.combo)
	}
	if len(g.shots) != 0 {
		t.Error("the shot should be used up")
	}
}

func TestWrongColorBreaksCombo(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.color = 1
	g.combo = 3
	g.score = 70
	g.targets = []Target{{X: float64(muzzle(g) - 1), Y: 5, Color: 0}}

	g.Step(press(core.ActionPrimary))
	events := stepUntil(t, g, 60, func() bool { return len(g.shots) == 0 })

	if !slices.Contains(events, core.EventMiss) {
		t.Errorf("events %v lack a miss", events)
	}
	if len(g.targets) != 1 || g.combo != 0 || g.score != 70 {
		t.Errorf("targets=%d combo=%d score=%d", len(g.targets), g.combo, g.score)
	}
}

func TestComboMultipliesPoints(t *testing.T) {
	g := newPlaying(t, quietConfig())
	col := float64(muzzle(g) - 1)
	g.targets = []Target{{X: col, Y: 4, Color: 0}, {X: col, Y: 8, Color: 0}}

	g.Step(press(core.ActionPrimary))
	g.Step(press(core.ActionPrimary))
	stepUntil(t, g, 80, func() bool { return len(g.targets) == 0 })

	hp := g.cfg.Gameplay.HitPoints
	if want := hp + 2*hp; g.score != want {
		t.Errorf("score = %d, want %d", g.score, want)
	}
	if g.combo != 2 || g.comboUntil <= g.tick {
		t.Errorf("combo = %d, banner until %d at tick %d", g.combo, g.comboUntil, g.tick)
	}
}

func TestRainbowMatchesAnyColor(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.color = 0
	g.rainbowUntil = g.tick + 1000
	g.targets = []Target{{X: float64(muzzle(g) - 1), Y: 5, Color: 3}}

	g.Step(press(core.ActionPrimary))
	stepUntil(t, g, 60, func() bool { return len(g.targets) == 0 })
	if g.shotsHit != 1 {
		t.Errorf("shotsHit = %d, want 1", g.shotsHit)
	}
}

func TestFastTargetCannotSlipPastShot(t *testing.T) {
	cfg := quietConfig()
	cfg.Projectile.Speed = 1
	for start := 0.0; start < 1; start += 0.25 {
		g := newPlaying(t, cfg)
		g.targets = []Target{{X: float64(muzzle(g) - 1), Y: start, VY: 1, Color: 0}}
		g.Step(press(core.ActionPrimary))
		stepUntil(t, g, 40, func() bool { return len(g.targets) == 0 })
		if g.shotsHit != 1 || g.lives != cfg.Gameplay.Lives {
			t.Errorf("start %.2f: hits=%d lives=%d", start, g.shotsHit, g.lives)
		}
	}
}

func TestLandingCostsLife(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.score = 5
	g.combo = 2
	g.targets = []Target{{X: 0, Y: float64(g.playH()) - 0.5, VY: 0.6}}

	res := g.Step(core.NewInputFrame())
	if !slices.Contains(res.Events, core.EventDamage) {
		t.Errorf("events %v lack damage", res.Events)
	}
	if g.lives != g.cfg.Gameplay.Lives-1 || g.score != 0 || g.combo != 0 || len(g.targets) != 0 {
		t.Errorf("after landing: %+v", g.Snapshot())
	}
}

func TestGameOverWhenLivesRunOut(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.lives = 1
	g.score = 300
	g.targets = []Target{{X: 0, Y: float64(g.playH()) - 0.1, VY: 0.5}}

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || !slices.Contains(res.Events, core.EventCrash) {
		t.Fatalf("state %+v events %v", res.State, res.Events)
	}
	if g.best != 290 {
		t.Errorf("best = %d, want 290", g.best)
	}
	if g.Step(press(core.ActionPrimary)).State.Score != 290 {
		t.Error("game over should ignore input")
	}
}

func TestPowerUps(t *testing.T) {
	tests := []struct {
		kind  PowerUpKind
		check func(*Game) bool
	}{
		{PowerRainbow, func(g *Game) bool { return g.rainbow() }},
		{PowerSlow, func(g *Game) bool { return g.slow() }},
		{PowerMultiplier, func(g *Game) bool { return g.score == 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := newPlaying(t, quietConfig())
			g.score = 50
			g.powerUps = []PowerUp{{X: g.playerX, Y: float64(g.playH()) - 0.01, Kind: tt.kind}}

			res := g.Step(core.NewInputFrame())
			if !slices.Contains(res.Events, core.EventPowerUp) || !tt.check(g) {
				t.Errorf("not applied: events %v, %+v", res.Events, g.Snapshot())
			}
			if len(g.powerUps) != 0 {
				t.Error("pickup should be consumed")
			}
		})
	}
}

func TestMissedPowerUpFallsAway(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.playerX = 0
	g.score = 50
	g.powerUps = []PowerUp{{X: 60, Y: float64(g.playH()) - 0.01, Kind: PowerMultiplier}}

	res := g.Step(core.NewInputFrame())
	if slices.Contains(res.Events, core.EventPowerUp) || g.score != 50 || len(g.powerUps) != 0 {
		t.Errorf("missed pickup: events %v, %+v", res.Events, g.Snapshot())
	}
}

func TestEffectsExpire(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUps.Duration = 10
	g := newPlaying(t, cfg)
	g.apply(PowerSlow)
	g.apply(PowerRainbow)

	g.targets = []Target{{X: 0, Y: 2, VY: 0.2}}
	g.Step(core.NewInputFrame())
	if got := g.targets[0].Y; got != 2.1 {
		t.Errorf("slow fall moved to %v, want 2.1", got)
	}

	for range 10 {
		g.Step(core.NewInputFrame())
	}
	if g.rainbow() || g.slow() {
		t.Errorf("effects still active at tick %d", g.tick)
	}
}

func TestLevelChangesTargets(t *testing.T) {
	cfg := quietConfig()
	cfg.Difficulty.Enabled = false
	g := newPlaying(t, cfg)

	t1 := g.newTarget()
	if t1.VX != 0 || t1.ShiftAt != 0 {
		t.Errorf("level 1 target drifts or shifts: %+v", t1)
	}

	g.score = 2 * cfg.Gameplay.LevelEvery
	g.Step(core.NewInputFrame())
	if g.level != 3 {
		t.Fatalf("level = %d at score %d, want 3", g.level, g.score)
	}
	t3 := g.newTarget()
	if t3.VX == 0 || t3.ShiftAt == 0 {
		t.Errorf("level 3 target should drift and shift: %+v", t3)
	}
	if floor := cfg.Targets.MinSpeed + 2*cfg.Targets.LevelBoost; t3.VY < floor {
		t.Errorf("level 3 speed %v below %v", t3.VY, floor)
	}

	g.score = 100 * cfg.Gameplay.LevelEvery
	g.Step(core.NewInputFrame())
	if g.level != cfg.Gameplay.MaxLevel {
		t.Errorf("level = %d, want capped at %d", g.level, cfg.Gameplay.MaxLevel)
	}
}

func TestTargetChangesColorOnce(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.targets = []Target{{X: 0, Y: 1, Color: 2, ShiftAt: g.tick + 1}}
	g.Step(core.NewInputFrame())
	if c := g.targets[0].Color; c == 2 || c < 0 || c >= len(Palette) {
		t.Errorf("color = %d, want another palette slot", c)
	}
	if g.targets[0].ShiftAt != 0 {
		t.Error("shift should happen once")
	}
}

func TestDriftBouncesOffWalls(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.targets = []Target{{X: 0.1, Y: 1, VX: -0.5}}
	g.Step(core.NewInputFrame())
	if tg := g.targets[0]; tg.X != 0 || tg.VX <= 0 {
		t.Errorf("after the left wall: %+v", tg)
	}
}

func TestSpawnsOnSchedule(t *testing.T) {
	cfg := config.DefaultColorMatchConfig()
	cfg.PowerUps.Chance = 1
	g := newPlaying(t, cfg)
	for range cfg.Targets.SpawnEvery {
		g.Step(core.NewInputFrame())
	}
	if len(g.targets) != 1 || len(g.powerUps) != 1 {
		t.Errorf("targets=%d powerUps=%d, want 1 and 1", len(g.targets), len(g.powerUps))
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.targets = []Target{{X: 0, Y: 1, VY: 0.5}}
	g.Step(press(core.ActionPause))
	before := g.Snapshot()
	for range 30 {
		g.Step(press(core.ActionPrimary, core.ActionLeft))
	}
	if after := g.Snapshot(); after != before || !after.Paused {
		t.Errorf("paused game changed:\n%+v\n%+v", before, after)
	}
	g.Step(press(core.ActionPause))
	if g.paused {
		t.Error("second pause should resume")
	}
}

func TestTooSmallThenResize(t *testing.T) {
	g := NewWithConfig(quietConfig())
	if err := g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1}); err != nil {
		t.Fatal(err)
	}
	if g.Snapshot().Phase != PhaseTooSmall {
		t.Fatalf("phase = %s, want %s", g.Snapshot().Phase, PhaseTooSmall)
	}
	g.Step(press(core.ActionPrimary))
	if g.phase != PhaseMenu {
		t.Error("a too-small game should not start")
	}

	if err := g.Resize(80, 24); err != nil {
		t.Fatal(err)
	}
	if g.Snapshot().Phase != PhaseMenu {
		t.Errorf("phase = %s after resize", g.Snapshot().Phase)
	}
}

func TestResizeClampsObjects(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.playerX = 70
	g.targets = []Target{{X: 75, Y: 3}}
	if err := g.Resize(40, 24); err != nil {
		t.Fatal(err)
	}
	if g.playerX != 40-g.cfg.Player.Width || g.targets[0].X != float64(40-g.cfg.Targets.Width) {
		t.Errorf("playerX=%d targetX=%v", g.playerX, g.targets[0].X)
	}
}

func TestSetHighScoreKeepsBest(t *testing.T) {
	g := New()
	g.SetHighScore(120)
	g.SetHighScore(80)
	if g.best != 120 {
		t.Errorf("best = %d, want 120", g.best)
	}
}

func TestAccuracy(t *testing.T) {
	g := New()
	if g.Accuracy() != 0 {
		t.Error("no shots should read 0%")
	}
	g.shotsFired, g.shotsHit = 4, 3
	if g.Accuracy() != 75 {
		t.Errorf("accuracy = %v, want 75", g.Accuracy())
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(quietConfig())
	if err := g.Reset(runtime); err != nil {
		t.Fatal(err)
	}
	s := core.NewScreen(runtime.ScreenW, runtime.ScreenH)
	g.Render(s)
	if !strings.Contains(s.String(), "C O L O R") {
		t.Error("menu overlay missing")
	}

	g.Step(press(core.ActionPrimary))
	g.Step(press(core.ActionColor2))
	g.targets = []Target{{X: 10, Y: 4, Color: 3}}
	g.Render(s)

	if !strings.Contains(s.Row(0), "Color Match") {
		t.Errorf("HUD = %q", s.Row(0))
	}
	if !strings.Contains(s.Row(runtime.ScreenH-1), "[2 ██]") {
		t.Errorf("palette row = %q", s.Row(runtime.ScreenH-1))
	}
	if c := s.GetCell(10, playTop+4); c.Rune != TargetChar || c.Color != Palette[3] {
		t.Errorf("target cell = %+v", c)
	}
	if s.Get(muzzle(g), playTop+g.playH()) != MuzzleChar {
		t.Error("cannon muzzle missing")
	}

	g.phase = PhaseGameOver
	g.Render(s)
	if !strings.Contains(s.String(), "Accuracy") {
		t.Error("game over overlay should show accuracy")
	}
}
