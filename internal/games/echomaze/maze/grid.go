// Package maze generates the Echo Maze levels: a randomized depth-first
// carve verified for connectivity, followed by placement of keys, coins,
// the treasure and traps so that nothing placed is ever cut off from the
// start cell.
package maze

import "strings"

// Cell is the content of one grid square.
type Cell uint8

const (
	Wall Cell = iota
	Floor
)

func (c Cell) String() string {
	if c == Floor {
		return "floor"
	}
	return "wall"
}

// Position is a grid coordinate, 0-indexed from the top-left corner.
type Position struct {
	X, Y int
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |dx| + |dy| between two positions.
func Manhattan(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Start is where carving begins and where the player spawns.
var Start = Position{X: 1, Y: 1}

// Grid is a W×H field of cells stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns a grid with every cell set to Wall.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// In reports whether p lies inside the grid.
func (g *Grid) In(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the cell at p. Positions outside the grid read as Wall.
func (g *Grid) At(p Position) Cell {
	if !g.In(p) {
		return Wall
	}
	return g.cells[p.Y*g.width+p.X]
}

// Set changes the cell at p. Positions outside the grid are ignored.
func (g *Grid) Set(p Position, c Cell) {
	if !g.In(p) {
		return
	}
	g.cells[p.Y*g.width+p.X] = c
}

// IsFloor reports whether p is an in-bounds Floor cell.
func (g *Grid) IsFloor(p Position) bool {
	return g.At(p) == Floor
}

// FloorCount returns the number of Floor cells.
func (g *Grid) FloorCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Floor {
			n++
		}
	}
	return n
}

// Floors returns every Floor position in row-major order.
func (g *Grid) Floors() []Position {
	out := make([]Position, 0, len(g.cells)/2)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] == Floor {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// String renders the grid with '#' for walls and '.' for floor.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] == Floor {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
