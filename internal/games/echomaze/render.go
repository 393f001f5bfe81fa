package echomaze

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/games/echomaze/maze"
)

var runes = []rune("ᚠᚢᚦᚨᚱᚲᚷᚹ")

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall || g.level == nil {
		dst.DrawOverlay(core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	g.renderGrid(dst)
	g.renderFootprints(dst)
	g.renderEntities(dst)
	g.put(dst, g.player, '@', core.ColorBrightWhite)
	dst.DrawTextCenteredColored(dst.Height()-1, "arrows move · space echo · p pause · q quit", core.ColorDarkGray)

	switch {
	case g.phase == PhaseMenu:
		dst.DrawOverlay(core.ColorBrightCyan,
			"E C H O   M A Z E",
			"Collect every key, then claim the treasure",
			"Press SPACE to start")
	case g.phase == PhaseWin:
		dst.DrawOverlay(core.ColorBrightGreen, "You escaped!",
			fmt.Sprintf("Score: %d", g.score), "Press R to play again")
	case g.phase == PhaseGameOver:
		dst.DrawOverlay(core.ColorBrightRed, "Game Over", g.cause,
			fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.paused:
		dst.DrawOverlay(core.ColorCyan, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	if g.level == nil {
		dst.DrawHUD(" Echo Maze", core.ColorBrightCyan)
		return
	}
	echo := "ready"
	if g.echoTimer > 0 {
		echo = fmt.Sprintf("%ds", (g.echoTimer+g.rate()-1)/g.rate())
	}
	secs := g.secondsLeft()
	hud := fmt.Sprintf(" Echo Maze  Keys: %d/%d  Coins: %d  Score: %d  Time: %d:%02d  Echo: %s",
		g.keys, g.level.Count(maze.Key), g.coins, g.score, secs/60, secs%60, echo)
	color := core.ColorBrightCyan
	if secs < 30 {
		color = core.ColorBrightRed
	}
	dst.DrawHUD(hud, color)
}

// renderGrid draws lit cells brightly and remembered cells dimmed.
func (g *Game) renderGrid(dst *core.Screen) {
	grid := g.level.Grid
	for y := range grid.Height() {
		for x := range grid.Width() {
			p := maze.Position{X: x, Y: y}
			lit := g.isVisible(p)
			if !lit && !g.isVisited(p) {
				continue
			}
			wall, floor := core.ColorBrightCyan, core.ColorGray
			if !lit {
				wall, floor = wall.Dim(), core.ColorDarkGray
			}
			if grid.At(p) == maze.Wall {
				g.fill(dst, p, '█', wall)
			} else {
				g.put(dst, p, '·', floor)
			}
		}
	}
}

// renderFootprints fades runes left on walked cells.
func (g *Game) renderFootprints(dst *core.Screen) {
	half := g.cfg.Gameplay.FootprintTicks / 2
	for _, f := range g.footprints {
		c := core.ColorBrightMagenta
		if f.age >= half {
			c = c.Dim()
		}
		g.put(dst, f.pos, runes[(f.pos.X*7+f.pos.Y*3)%len(runes)], c)
	}
}

// renderEntities shows keys always; other pickups and traps only when lit.
func (g *Game) renderEntities(dst *core.Screen) {
	for _, t := range g.level.Traps {
		if !t.Active || !g.isVisible(t.Pos) {
			continue
		}
		if t.Kind == maze.Pit {
			g.put(dst, t.Pos, 'O', core.ColorOrange)
		} else {
			g.put(dst, t.Pos, '^', core.ColorBrightRed)
		}
	}
	for _, c := range g.level.Collectibles {
		if c.Collected {
			continue
		}
		switch c.Kind {
		case maze.Key:
			g.put(dst, c.Pos, 'K', core.ColorBrightYellow)
		case maze.Coin:
			if g.isVisible(c.Pos) {
				g.put(dst, c.Pos, '•', core.ColorYellow)
			}
		case maze.Treasure:
			if g.isVisible(c.Pos) {
				color := core.ColorPurple
				if g.keys == g.level.Count(maze.Key) {
					color = core.ColorBrightGreen
				}
				g.put(dst, c.Pos, '◆', color)
			}
		}
	}
}

// put draws r in the left column of a maze cell.
func (g *Game) put(dst *core.Screen, p maze.Position, r rune, c core.Color) {
	dst.SetColored(g.offsetX+p.X*cellWidth, g.offsetY+p.Y, r, c)
}

// fill draws r across the whole maze cell.
func (g *Game) fill(dst *core.Screen, p maze.Position, r rune, c core.Color) {
	for i := range cellWidth {
		dst.SetColored(g.offsetX+p.X*cellWidth+i, g.offsetY+p.Y, r, c)
	}
}

func (g *Game) rate() int {
	if g.runtime.TickRate <= 0 {
		return 60
	}
	return g.runtime.TickRate
}
