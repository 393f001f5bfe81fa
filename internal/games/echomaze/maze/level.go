package maze

import "strings"

// Glyphs used by Level.String.
const (
	glyphWall     = '#'
	glyphFloor    = '.'
	glyphStart    = 'S'
	glyphKey      = 'K'
	glyphCoin     = '$'
	glyphTreasure = 'T'
	glyphSpikes   = '^'
	glyphPit      = 'O'
)

// Remaining returns how many uncollected collectibles of kind k are left.
func (l *Level) Remaining(k CollectibleKind) int {
	n := 0
	for _, c := range l.Collectibles {
		if c.Kind == k && !c.Collected {
			n++
		}
	}
	return n
}

// Count returns the number of collectibles of kind k, collected or not.
func (l *Level) Count(k CollectibleKind) int {
	n := 0
	for _, c := range l.Collectibles {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// CollectibleAt returns the index of the collectible at p, or -1.
func (l *Level) CollectibleAt(p Position) int {
	for i, c := range l.Collectibles {
		if c.Pos == p {
			return i
		}
	}
	return -1
}

// TrapAt returns the index of the trap at p, or -1.
func (l *Level) TrapAt(p Position) int {
	for i, t := range l.Traps {
		if t.Pos == p {
			return i
		}
	}
	return -1
}

// String draws the level as ASCII with entities over the grid.
func (l *Level) String() string {
	g := l.Grid
	rows := make([][]byte, g.Height())
	for y := range rows {
		rows[y] = make([]byte, g.Width())
		for x := range rows[y] {
			if g.IsFloor(Position{X: x, Y: y}) {
				rows[y][x] = glyphFloor
			} else {
				rows[y][x] = glyphWall
			}
		}
	}

	put := func(p Position, b byte) {
		if g.In(p) {
			rows[p.Y][p.X] = b
		}
	}
	for _, t := range l.Traps {
		if t.Kind == Pit {
			put(t.Pos, glyphPit)
		} else {
			put(t.Pos, glyphSpikes)
		}
	}
	for _, c := range l.Collectibles {
		if c.Collected {
			continue
		}
		switch c.Kind {
		case Key:
			put(c.Pos, glyphKey)
		case Coin:
			put(c.Pos, glyphCoin)
		case Treasure:
			put(c.Pos, glyphTreasure)
		}
	}
	put(l.Start, glyphStart)

	var sb strings.Builder
	for y, r := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(r)
	}
	return sb.String()
}
