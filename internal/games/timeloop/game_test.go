package timeloop

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

// quietConfig has one-second rounds and no enemies of its own.
func quietConfig() config.TimeLoopConfig {
	cfg := config.DefaultTimeLoopConfig()
	cfg.Rounds.Seconds = 1
	cfg.Enemies.SpawnEvery = 1 << 20
	return cfg
}

func newPlaying(t *testing.T, cfg config.TimeLoopConfig) *Game {
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

// idle steps n ticks without input and returns the events.
func idle(g *Game, n int) []core.Event {
	var events []core.Event
	for range n {
		events = append(events, g.Step(core.NewInputFrame()).Events...)
	}
	return events
}

// finishRound idles until the round ends.
func finishRound(t *testing.T, g *Game) []core.Event {
	t.Helper()
	events := idle(g, g.ticksLeft)
	if g.phase == PhasePlaying {
		t.Fatalf("round did not end: %+v", g.Snapshot())
	}
	return events
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("timeloop") {
		t.Fatal("timeloop not registered")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		cfg := config.DefaultTimeLoopConfig()
		cfg.Rounds.Seconds = 10
		g := NewWithConfig(cfg)
		if err := g.Reset(runtime); err != nil {
			t.Fatal(err)
		}
		moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
		for i := range 3000 {
			in := core.NewInputFrame()
			switch {
			case i%50 == 0:
				in.Set(core.ActionPrimary)
			case i%11 == 0:
				in.Set(moves[(i/11)%len(moves)])
			case i%3 == 0:
				in.Set(core.ActionPrimary)
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
	g := NewWithConfig(config.DefaultTimeLoopConfig())
	if err := g.Reset(runtime); err != nil {
		t.Fatal(err)
	}
	idle(g, 200)
	if s := g.Snapshot(); s.Phase != PhaseMenu || s.Tick != 0 || s.Enemies != 0 {
		t.Fatalf("menu advanced: %+v", s)
	}
	res := g.Step(press(core.ActionPrimary))
	if g.phase != PhasePlaying || !slices.Contains(res.Events, core.EventStart) {
		t.Errorf("phase = %s, events %v", g.phase, res.Events)
	}
	if g.notice == "" {
		t.Error("starting should announce the loop")
	}
}

func TestRoundEndsInSummary(t *testing.T) {
	cfg := quietConfig()
	g := newPlaying(t, cfg)
	if g.ticksLeft != runtime.TicksFor(cfg.Rounds.Seconds) {
		t.Fatalf("ticksLeft = %d", g.ticksLeft)
	}

	events := finishRound(t, g)
	if g.phase != PhaseSummary || !slices.Contains(events, core.EventRound) {
		t.Fatalf("phase = %s, events %v", g.phase, events)
	}
	if g.score != cfg.Scoring.RoundBonus || len(g.tracks) != 1 {
		t.Errorf("score=%d tracks=%d", g.score, len(g.tracks))
	}

	idle(g, 30)
	if g.phase != PhaseSummary {
		t.Error("summary should wait for a key")
	}
	res := g.Step(press(core.ActionPrimary))
	if g.phase != PhasePlaying || g.round != 1 || len(g.echoes) != 1 || !slices.Contains(res.Events, core.EventRound) {
		t.Errorf("after continue: %+v", g.Snapshot())
	}
	if g.ticksLeft != runtime.TicksFor(cfg.Rounds.Seconds) || g.glitchUntil <= g.elapsed {
		t.Errorf("new round: ticksLeft=%d glitchUntil=%d", g.ticksLeft, g.glitchUntil)
	}
}

func TestEchoReplaysMoves(t *testing.T) {
	g := newPlaying(t, quietConfig())
	startX, startY := g.player.X, g.player.Y
	for range 3 {
		g.Step(press(core.ActionRight))
	}
	g.Step(press(core.ActionUp))
	wantX, wantY := g.player.X, g.player.Y
	if wantX != startX+3 || wantY != startY-1 {
		t.Fatalf("player at (%d,%d)", wantX, wantY)
	}
	finishRound(t, g)
	g.Step(press(core.ActionPrimary))

	echo := &g.echoes[0]
	if echo.X != startX || echo.Y != startY {
		t.Fatalf("echo starts at (%d,%d), want (%d,%d)", echo.X, echo.Y, startX, startY)
	}
	idle(g, 4)
	if echo.X != wantX || echo.Y != wantY {
		t.Errorf("echo at (%d,%d), want (%d,%d)", echo.X, echo.Y, wantX, wantY)
	}
	if g.player.X != startX || g.player.Y != startY {
		t.Error("the live player should not follow the echo")
	}
}

func TestEchoShotsKillWithoutCountingStats(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.Speed = 0
	cfg.Enemies.Health = 1
	g := newPlaying(t, cfg)
	g.Step(press(core.ActionPrimary))
	finishRound(t, g)
	g.Step(press(core.ActionPrimary))

	x, y := g.echoes[0].X, g.echoes[0].Y
	g.enemies = []Enemy{{X: float64(x), Y: float64(y - 4), HP: 1}}
	events := idle(g, 10)

	if len(g.enemies) != 0 || !slices.Contains(events, core.EventHit) {
		t.Fatalf("echo shot missed: %+v", g.Snapshot())
	}
	if g.score != cfg.Scoring.RoundBonus+cfg.Scoring.Kill {
		t.Errorf("score = %d", g.score)
	}
	if g.stats != (RoundStats{}) {
		t.Errorf("echo counted in stats: %+v", g.stats)
	}
	if slices.Contains(events, core.EventShoot) {
		t.Error("echo shots should be silent")
	}
}

func TestBulletsKillEnemies(t *testing.T) {
	cfg := quietConfig()
	cfg.Rounds.Seconds = 5
	cfg.Enemies.Speed = 0
	g := newPlaying(t, cfg)
	x, y := g.player.X, g.player.Y
	g.enemies = []Enemy{{X: float64(x), Y: float64(y - 6), HP: 2}}

	var events []core.Event
	for range 30 {
		events = append(events, g.Step(press(core.ActionPrimary)).Events...)
	}

	if len(g.enemies) != 0 {
		t.Fatalf("enemy survived: %+v", g.enemies)
	}
	want := RoundStats{DamageDealt: 2, Defeated: 1, ShotsFired: 4}
	if g.stats != want {
		t.Errorf("stats = %+v, want %+v", g.stats, want)
	}
	if g.stats.Efficiency() != 25 {
		t.Errorf("efficiency = %d", g.stats.Efficiency())
	}
	if g.score != cfg.Scoring.Kill || !slices.Contains(events, core.EventHit) {
		t.Errorf("score=%d events=%v", g.score, events)
	}
}

func TestHorizontalBulletsReachEnemies(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.Speed = 0
	cfg.Enemies.Health = 1
	g := newPlaying(t, cfg)
	g.Step(press(core.ActionLeft))
	x, y := g.player.X, g.player.Y
	for _, dx := range []int{1, 2, 3} {
		g.enemies = []Enemy{{X: float64(x - 2*dx), Y: float64(y), HP: 1}}
		g.player.cooldown = 0
		g.Step(press(core.ActionPrimary))
		idle(g, 3)
		if len(g.enemies) != 0 {
			t.Errorf("enemy %d columns left survived", 2*dx)
		}
	}
}

func TestDefendersCannotEnterBase(t *testing.T) {
	g := newPlaying(t, quietConfig())
	for range 5 {
		g.Step(press(core.ActionDown))
	}
	if g.base().Contains(g.player.X, g.player.Y) {
		t.Errorf("player walked into the base at (%d,%d)", g.player.X, g.player.Y)
	}
	if g.player.FaceY != 1 {
		t.Error("player should face the way it tried to move")
	}
}

func TestEnemyReachingBaseDamages(t *testing.T) {
	cfg := quietConfig()
	g := newPlaying(t, cfg)
	cx, cy := g.base().Center()
	g.enemies = []Enemy{{X: float64(cx), Y: float64(cy - 1), HP: 2}}

	res := g.Step(core.NewInputFrame())
	if !slices.Contains(res.Events, core.EventDamage) || len(g.enemies) != 0 {
		t.Fatalf("events %v, enemies %d", res.Events, len(g.enemies))
	}
	if g.health != cfg.Base.Health-cfg.Base.Damage {
		t.Errorf("health = %d", g.health)
	}
}

func TestEnemiesHomeOnBase(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.enemies = []Enemy{{X: 0, Y: 0, HP: 2}}
	idle(g, 10)
	if e := g.enemies[0]; e.X <= 0 || e.Y <= 0 {
		t.Errorf("enemy did not move toward the base: %+v", e)
	}
}

func TestBaseDestroyedEndsGame(t *testing.T) {
	cfg := quietConfig()
	g := newPlaying(t, cfg)
	g.health = cfg.Base.Damage
	g.score = 40
	cx, cy := g.base().Center()
	g.enemies = []Enemy{{X: float64(cx), Y: float64(cy), HP: 1}}

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || res.State.Won || !slices.Contains(res.Events, core.EventCrash) {
		t.Fatalf("state %+v events %v", res.State, res.Events)
	}
	if g.health != 0 || g.best != 40 {
		t.Errorf("health=%d best=%d", g.health, g.best)
	}
}

func TestWinAfterLastRound(t *testing.T) {
	cfg := quietConfig()
	cfg.Rounds.Count = 2
	g := newPlaying(t, cfg)
	finishRound(t, g)
	g.Step(press(core.ActionPrimary))
	g.health = 60
	events := finishRound(t, g)

	st := g.State()
	if !st.GameOver || !st.Won || !slices.Contains(events, core.EventRound) {
		t.Fatalf("state %+v events %v", st, events)
	}
	want := 2*cfg.Scoring.RoundBonus + 60*cfg.Scoring.HealthBonus
	if g.score != want || g.best != want {
		t.Errorf("score=%d best=%d, want %d", g.score, g.best, want)
	}
}

func TestWaveRepeatsEachRound(t *testing.T) {
	cfg := config.DefaultTimeLoopConfig()
	cfg.Rounds.Seconds = 2
	g := newPlaying(t, cfg)

	idle(g, cfg.Enemies.SpawnEvery)
	if len(g.enemies) != 1 {
		t.Fatalf("enemies = %d after one spawn interval", len(g.enemies))
	}
	first := g.enemies[0]
	finishRound(t, g)
	g.Step(press(core.ActionPrimary))

	idle(g, cfg.Enemies.SpawnEvery)
	if len(g.enemies) != 1 || g.enemies[0] != first {
		t.Errorf("round 2 wave %+v, want %+v", g.enemies, first)
	}
}

func TestCooldownLimitsFire(t *testing.T) {
	cfg := quietConfig()
	g := newPlaying(t, cfg)
	for range cfg.Player.Cooldown * 3 {
		g.Step(press(core.ActionPrimary))
	}
	if g.stats.ShotsFired != 3 {
		t.Errorf("shots = %d over %d ticks, want 3", g.stats.ShotsFired, cfg.Player.Cooldown*3)
	}
}

func TestPauseAndRestart(t *testing.T) {
	cfg := quietConfig()
	cfg.Rounds.Seconds = 10
	g := newPlaying(t, cfg)
	idle(g, 20)
	g.health = 30

	g.Step(press(core.ActionRestart))
	if g.health != 30 || g.tick != 21 {
		t.Fatal("R should do nothing while playing")
	}

	g.Step(press(core.ActionPause))
	before := g.Snapshot()
	idle(g, 30)
	if g.Snapshot() != before || !before.Paused {
		t.Fatalf("paused game moved: %+v", g.Snapshot())
	}

	res := g.Step(press(core.ActionRestart))
	s := g.Snapshot()
	if s.Phase != PhasePlaying || s.Paused || s.Health != cfg.Base.Health || s.Tick != 0 || s.Round != 0 {
		t.Errorf("after restart: %+v", s)
	}
	if !slices.Contains(res.Events, core.EventStart) {
		t.Errorf("events %v", res.Events)
	}
}

func TestTooSmallThenResize(t *testing.T) {
	g := NewWithConfig(quietConfig())
	if err := g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1}); err != nil {
		t.Fatal(err)
	}
	if g.Snapshot().Phase != PhaseTooSmall {
		t.Fatalf("phase = %s", g.Snapshot().Phase)
	}
	if err := g.Resize(80, 24); err != nil {
		t.Fatal(err)
	}
	if g.Snapshot().Phase != PhaseMenu {
		t.Errorf("phase = %s after resize", g.Snapshot().Phase)
	}
}

func TestResizeKeepsDefendersInside(t *testing.T) {
	g := newPlaying(t, quietConfig())
	g.player.X, g.player.Y = 79, 21
	if err := g.Resize(50, 16); err != nil {
		t.Fatal(err)
	}
	if g.player.X != 49 || g.player.Y != 13 {
		t.Errorf("player at (%d,%d)", g.player.X, g.player.Y)
	}
}

func TestEfficiency(t *testing.T) {
	if (RoundStats{}).Efficiency() != 0 {
		t.Error("no shots should read 0")
	}
	if got := (RoundStats{Defeated: 1, ShotsFired: 3}).Efficiency(); got != 33 {
		t.Errorf("efficiency = %d, want 33", got)
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(quietConfig())
	if err := g.Reset(runtime); err != nil {
		t.Fatal(err)
	}
	s := core.NewScreen(runtime.ScreenW, runtime.ScreenH)
	g.Render(s)
	if !strings.Contains(s.String(), "T I M E   L O O P") {
		t.Error("menu overlay missing")
	}

	g.Step(press(core.ActionPrimary))
	g.Render(s)
	if !strings.Contains(s.Row(0), "Round 1/3") {
		t.Errorf("HUD = %q", s.Row(0))
	}
	b := g.base()
	if !strings.Contains(s.Row(playTop+b.Y), "[■]") {
		t.Error("base missing")
	}
	if c := s.GetCell(g.player.X, playTop+g.player.Y); c.Rune != DefenderChar || c.Color != core.ColorBrightGreen {
		t.Errorf("player cell = %+v", c)
	}

	finishRound(t, g)
	g.Render(s)
	if !strings.Contains(s.String(), "LOOP 1 COMPLETE") {
		t.Error("summary overlay missing")
	}
}
