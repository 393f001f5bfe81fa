package gravityflip

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	BorderChar    = '═'
	TrailChar     = '·'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	arrow := "▼"
	if g.flipped {
		arrow = "▲"
	}
	dst.DrawHUD(fmt.Sprintf(" Gravity Flip  Score: %d  Best: %d  Speed: %.2f  Gravity: %s",
		g.score, g.best, g.speed, arrow), core.ColorBrightMagenta)

	if g.tooSmall {
		dst.DrawOverlay(core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	for x := range dst.Width() {
		dst.SetColored(x, playTop-1, BorderChar, core.ColorPurple)
		dst.SetColored(x, playTop+g.playH(), BorderChar, core.ColorPurple)
	}

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, p)
	}
	g.drawPlayer(dst)

	switch {
	case g.phase == PhaseMenu:
		dst.DrawOverlay(core.ColorBrightCyan,
			"G R A V I T Y   F L I P",
			"SPACE flips gravity",
			fmt.Sprintf("High Score: %d", g.best),
			"Press SPACE to start")
	case g.phase == PhaseGameOver:
		dst.DrawOverlay(core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("High Score: %d", g.best),
			"Press R to restart")
	case g.paused:
		dst.DrawOverlay(core.ColorCyan, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawPipe(dst *core.Screen, p Pipe) {
	width := g.cfg.Obstacles.PipeWidth
	x0 := p.Col()
	bottom := p.GapY + p.GapHeight

	for x := x0; x < x0+width; x++ {
		for y := 0; y < p.GapY; y++ {
			dst.SetColored(x, playTop+y, PipeChar, core.ColorBrightGreen)
		}
		if p.GapY > 0 {
			dst.SetColored(x, playTop+p.GapY-1, PipeCapTop, core.ColorGreen)
		}
		for y := bottom; y < g.playH(); y++ {
			dst.SetColored(x, playTop+y, PipeChar, core.ColorBrightGreen)
		}
		if bottom < g.playH() {
			dst.SetColored(x, playTop+bottom, PipeCapBottom, core.ColorGreen)
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen) {
	color := core.ColorBrightCyan
	if g.flipped {
		color = core.ColorBrightMagenta
	}

	// Older trail points sit further left.
	for i, y := range g.trail {
		x := g.cfg.Player.X - (len(g.trail) - i)
		dst.SetColored(x, playTop+int(y), TrailChar, color.Dim())
	}

	r := g.playerRect()
	for dy := range r.H {
		for dx := range r.W {
			ch := '■'
			if dx == r.W-1 {
				ch = '▶'
			}
			dst.SetColored(r.X+dx, playTop+r.Y+dy, ch, color)
		}
	}
}
