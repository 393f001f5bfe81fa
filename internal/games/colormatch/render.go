package colormatch

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	TargetChar   = '█'
	ShiftingChar = '▓'
	ShotChar     = '│'
	CannonChar   = '▀'
	MuzzleChar   = '▲'
	BurstChar    = '*'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawHUD(g.hud(), core.ColorBrightCyan)

	if g.tooSmall {
		dst.DrawOverlay(core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	for _, t := range g.targets {
		g.drawTarget(dst, t)
	}
	for _, p := range g.powerUps {
		dst.SetColored(p.X, playTop+int(p.Y), p.Kind.Glyph(), g.powerUpColor(p.Kind))
	}
	for _, s := range g.shots {
		dst.SetColored(s.X, playTop+s.Row(), ShotChar, g.shotColor(s.Color))
	}
	for _, b := range g.bursts {
		for dx := -1; dx <= 1; dx++ {
			dst.SetColored(b.x+dx, playTop+b.y, BurstChar, Palette[b.color])
		}
	}
	g.drawCannon(dst)
	g.drawPalette(dst)

	if g.combo > 1 && g.tick < g.comboUntil {
		dst.DrawTextCenteredColored(playTop+g.playH()/2, fmt.Sprintf("Combo x%d!", g.combo), core.ColorBrightWhite)
	}

	switch {
	case g.phase == PhaseMenu:
		dst.DrawOverlay(core.ColorBrightCyan,
			"C O L O R   M A T C H",
			"←/→ move   1-4 color   SPACE shoot",
			"Only a matching color scores",
			fmt.Sprintf("High Score: %d", g.best),
			"Press SPACE to start")
	case g.phase == PhaseGameOver:
		dst.DrawOverlay(core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("High Score: %d", g.best),
			fmt.Sprintf("Accuracy: %.1f%%", g.Accuracy()),
			"Press R to restart")
	case g.paused:
		dst.DrawOverlay(core.ColorCyan, "PAUSED", "Press P to resume")
	}
}

func (g *Game) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, " Color Match  Score: %d  Best: %d  Lives: %d  Level: %d",
		g.score, g.best, g.lives, g.level)
	if g.combo > 1 {
		fmt.Fprintf(&b, "  Combo x%d", g.combo)
	}
	perSecond := g.runtime.TicksFor(1)
	if g.rainbow() {
		fmt.Fprintf(&b, "  Rainbow %ds", (g.rainbowUntil-g.tick)/perSecond)
	}
	if g.slow() {
		fmt.Fprintf(&b, "  Slow %ds", (g.slowUntil-g.tick)/perSecond)
	}
	return b.String()
}

func (g *Game) drawTarget(dst *core.Screen, t Target) {
	ch := TargetChar
	if t.ShiftAt > 0 && t.ShiftAt-g.tick < comboTicks {
		ch = ShiftingChar
	}
	r := t.Rect(g.cfg.Targets.Width)
	for dx := range r.W {
		dst.SetColored(r.X+dx, playTop+r.Y, ch, Palette[t.Color])
	}
}

// cycling returns the palette color shown for rainbow effects.
func (g *Game) cycling() core.Color {
	return Palette[(g.tick/4)%len(Palette)]
}

func (g *Game) shotColor(c int) core.Color {
	if g.rainbow() {
		return g.cycling()
	}
	return Palette[c]
}

func (g *Game) powerUpColor(k PowerUpKind) core.Color {
	switch k {
	case PowerRainbow:
		return g.cycling()
	case PowerSlow:
		return core.ColorBrightCyan
	default:
		return core.ColorBrightYellow
	}
}

func (g *Game) drawCannon(dst *core.Screen) {
	y := playTop + g.playH()
	color := Palette[g.color]
	for dx := range g.cfg.Player.Width {
		dst.SetColored(g.playerX+dx, y, CannonChar, color)
	}
	dst.SetColored(g.playerX+g.cfg.Player.Width/2, y, MuzzleChar, color)
}

// drawPalette lists the color keys on the bottom row, bracketing the
// selected one.
func (g *Game) drawPalette(dst *core.Screen) {
	y := dst.Height() - 1
	x := 1
	for i, c := range Palette {
		label := fmt.Sprintf(" %d ██ ", i+1)
		if i == g.color {
			label = fmt.Sprintf("[%d ██]", i+1)
		}
		dst.DrawTextColored(x, y, label, c)
		x += len([]rune(label)) + 1
	}
}
