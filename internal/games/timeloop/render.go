package timeloop

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	DefenderChar = '@'
	EnemyChar    = '◆'
	WoundedChar  = '◇'
	BulletChar   = '•'
	GlitchChar   = '░'
	healthBarLen = 10
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.drawHUD(dst)

	if g.tooSmall {
		dst.DrawOverlay(core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	g.drawBase(dst)
	for _, e := range g.enemies {
		ch, color := EnemyChar, core.ColorBrightRed
		if e.HP < g.cfg.Enemies.Health {
			ch, color = WoundedChar, core.ColorRed
		}
		x, y := e.Cell()
		dst.SetColored(x, playTop+y, ch, color)
	}
	for _, b := range g.bullets {
		color := core.ColorBrightWhite
		if b.Echo {
			color = core.ColorCyan
		}
		dst.SetColored(b.X, playTop+b.Y, BulletChar, color)
	}
	for _, e := range g.echoes {
		dst.SetColored(e.X, playTop+e.Y, DefenderChar, core.ColorPurple)
	}
	dst.SetColored(g.player.X, playTop+g.player.Y, DefenderChar, core.ColorBrightGreen)

	if g.elapsed < g.glitchUntil {
		g.drawGlitch(dst)
	}
	if g.elapsed < g.noticeUntil && g.notice != "" {
		dst.DrawTextCenteredColored(playTop+1, g.notice, core.ColorBrightCyan)
	}

	switch {
	case g.phase == PhaseMenu:
		dst.DrawOverlay(core.ColorBrightCyan,
			"T I M E   L O O P",
			"Trapped in a collapsing timeline",
			"Arrows move   SPACE fire   P pause",
			fmt.Sprintf("Hold the base for %d rounds of %ds", g.cfg.Rounds.Count, g.cfg.Rounds.Seconds),
			"Each round replays your past selves",
			fmt.Sprintf("High Score: %d", g.best),
			"Press SPACE to start")
	case g.phase == PhaseSummary:
		dst.DrawOverlay(core.ColorCyan,
			fmt.Sprintf(">>> LOOP %d COMPLETE <<<", g.round+1),
			fmt.Sprintf("Damage Dealt: %d", g.stats.DamageDealt),
			fmt.Sprintf("Enemies Defeated: %d", g.stats.Defeated),
			fmt.Sprintf("Shots Fired: %d", g.stats.ShotsFired),
			fmt.Sprintf("Loop Efficiency: %d%%", g.stats.Efficiency()),
			"Press SPACE to continue")
	case g.phase == PhaseGameOver:
		title, color := "GAME OVER", core.ColorBrightRed
		if g.won {
			title, color = "TIMELINE HELD", core.ColorBrightGreen
		}
		dst.DrawOverlay(color, title,
			fmt.Sprintf("Final Score: %d", g.score),
			fmt.Sprintf("High Score: %d", g.best),
			"Press R to restart")
	case g.paused:
		dst.DrawOverlay(core.ColorCyan, "PAUSED",
			"P  resume",
			"R  restart loop",
			"B  back to menu")
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	left := g.ticksLeft / g.runtime.TicksFor(1)
	text := fmt.Sprintf(" Time Loop  Round %d/%d  Time %ds  Score %d  Echoes %d  Health ",
		g.round+1, g.cfg.Rounds.Count, left, g.score, len(g.echoes))
	color := core.ColorBrightCyan
	if left <= 10 && g.phase == PhasePlaying {
		color = core.ColorBrightRed
	}
	dst.DrawHUD(text, color)

	x := len([]rune(text))
	filled := 0
	if full := g.cfg.Base.Health; full > 0 {
		filled = core.Clamp(g.health*healthBarLen/full, 0, healthBarLen)
	}
	bar := core.ColorBrightGreen
	switch {
	case filled <= healthBarLen/4:
		bar = core.ColorBrightRed
	case filled <= healthBarLen/2:
		bar = core.ColorBrightYellow
	}
	dst.DrawTextColored(x, 0, strings.Repeat("█", filled), bar)
	dst.DrawTextColored(x+filled, 0, strings.Repeat("░", healthBarLen-filled), core.ColorDarkGray)
	dst.DrawText(x+healthBarLen+1, 0, fmt.Sprint(g.health))
}

func (g *Game) drawBase(dst *core.Screen) {
	b := g.base()
	color := core.ColorBrightCyan
	if g.health*4 <= g.cfg.Base.Health {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(b.X, playTop+b.Y, "[■]", color)
}

// drawGlitch scatters static over the play area after a loop reset. The
// pattern depends only on elapsed ticks, so rendering stays deterministic.
func (g *Game) drawGlitch(dst *core.Screen) {
	w, h := dst.Width(), g.playH()
	if w <= 0 || h <= 0 {
		return
	}
	for i := range 40 {
		n := (g.elapsed+1)*7919 + i*104729
		x := n % w
		y := (n / w) % h
		for dx := range 1 + i%6 {
			dst.SetColored(x+dx, playTop+y, GlitchChar, core.ColorDarkGray)
		}
	}
}
