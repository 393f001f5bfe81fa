package colormatch

import (
	"math"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Palette holds the four shot colors in key order, 1 to 4.
var Palette = [4]core.Color{
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
	core.ColorBrightYellow,
}

// Target is a falling block. Positions are play-area cells; Color indexes
// Palette.
type Target struct {
	X, Y    float64 // Left edge and row
	VX, VY  float64
	Color   int
	ShiftAt int // Tick of the next color change, 0 = never
}

// Rect returns the cells the target covers.
func (t Target) Rect(width int) core.Rect {
	return core.NewRect(int(math.Floor(t.X)), int(math.Floor(t.Y)), width, 1)
}

// Projectile is a shot travelling straight up.
type Projectile struct {
	X     int
	Y     float64
	Color int
}

// Row returns the play-area row the shot occupies.
func (p Projectile) Row() int {
	return int(math.Floor(p.Y))
}

// PowerUpKind selects a pickup's effect.
type PowerUpKind int

const (
	PowerRainbow    PowerUpKind = iota // Every color matches for a while
	PowerSlow                          // Targets and pickups fall at half speed
	PowerMultiplier                    // Doubles the score on pickup
	powerKinds
)

// Glyph returns the display character for a pickup.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerRainbow:
		return '✦'
	case PowerSlow:
		return '◷'
	case PowerMultiplier:
		return '×'
	default:
		return '?'
	}
}

func (k PowerUpKind) String() string {
	switch k {
	case PowerRainbow:
		return "rainbow"
	case PowerSlow:
		return "slow"
	case PowerMultiplier:
		return "x2"
	default:
		return "unknown"
	}
}

// PowerUp is a falling pickup, collected when it lands on the cannon.
type PowerUp struct {
	X    int
	Y    float64
	Kind PowerUpKind
}

// burst is the short flash left where a target was destroyed.
type burst struct {
	x, y  int
	color int
	until int
}
