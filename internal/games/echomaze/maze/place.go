package maze

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// CollectibleKind distinguishes the pickups.
type CollectibleKind int

const (
	Key CollectibleKind = iota
	Coin
	Treasure
)

func (k CollectibleKind) String() string {
	switch k {
	case Key:
		return "key"
	case Coin:
		return "coin"
	case Treasure:
		return "treasure"
	}
	return "unknown"
}

// TrapKind distinguishes the hazards. Both are fatal; they only look different.
type TrapKind int

const (
	Spikes TrapKind = iota
	Pit
)

func (k TrapKind) String() string {
	if k == Pit {
		return "pit"
	}
	return "spikes"
}

// Collectible is a pickup. Only Collected changes after placement.
type Collectible struct {
	Pos       Position
	Kind      CollectibleKind
	Collected bool
}

// Trap is a hazard cell.
type Trap struct {
	Pos    Position
	Kind   TrapKind
	Active bool
}

// Counts requests entity totals. Traps == 0 selects 5 + width/4.
type Counts struct {
	Keys  int
	Coins int
	Traps int
}

// Placement is the result of PlaceEntities.
type Placement struct {
	Collectibles []Collectible
	Traps        []Trap
}

// Level is a finished maze ready to play.
type Level struct {
	Grid         *Grid
	Start        Position
	Collectibles []Collectible
	Traps        []Trap
}

// errTooFewCandidates tells Build to throw the grid away and carve again.
var errTooFewCandidates = errors.New("maze: too few reachable floor cells")

// Build generates grids and places entities on them until a grid offers
// enough room, regenerating the whole maze after each shortfall. Both this
// loop and each Generate call inside it run up to MaxAttempts times.
func (b *Builder) Build(width, height int, counts Counts) (*Level, error) {
	if counts.Keys < 0 || counts.Coins < 0 || counts.Traps < 0 {
		b.stage = StageNotGenerated
		return nil, fmt.Errorf("%w: negative counts %+v", ErrPlacementFailed, counts)
	}

	for attempt := 0; attempt < b.maxAttempts; attempt++ {
		g, err := b.Generate(width, height)
		if err != nil {
			return nil, err
		}
		p, err := b.PlaceEntities(g, counts)
		if errors.Is(err, errTooFewCandidates) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &Level{
			Grid:         g,
			Start:        Start,
			Collectibles: p.Collectibles,
			Traps:        p.Traps,
		}, nil
	}

	b.stage = StageNotGenerated
	return nil, fmt.Errorf("%w: %dx%d never had %d free cells in %d attempts",
		ErrPlacementFailed, width, height, counts.Keys+counts.Coins+1, b.maxAttempts)
}

// PlaceEntities places keys, coins, the treasure and traps on g. It returns
// an error wrapping errTooFewCandidates when the reachable floor (excluding
// Start) is smaller than keys + coins + 1; the builder then drops back to
// StageNotGenerated.
func (b *Builder) PlaceEntities(g *Grid, counts Counts) (Placement, error) {
	pool := candidates(g)
	need := counts.Keys + counts.Coins + 1
	if len(pool) < need {
		b.stage = StageNotGenerated
		return Placement{}, fmt.Errorf("%w: have %d, need %d", errTooFewCandidates, len(pool), need)
	}

	var out Placement
	var keys, coins []Position

	for i := 0; i < counts.Keys && len(pool) > 0; i++ {
		best, bestScore := -1, -1
		for j, c := range pool {
			score := Manhattan(c, Start)
			if len(keys) > 0 {
				score = minDistance(c, keys)
			}
			if score > bestScore {
				best, bestScore = j, score
			}
		}
		keys = append(keys, pool[best])
		out.Collectibles = append(out.Collectibles, Collectible{Pos: pool[best], Kind: Key})
		pool = slices.Delete(pool, best, best+1)
	}

	for i := 0; i < counts.Coins && len(pool) > 0; i++ {
		best, bestScore := -1, -1
		for j, c := range pool {
			score := min(minDistance(c, keys), minDistance(c, coins))
			if score > bestScore {
				best, bestScore = j, score
			}
		}
		coins = append(coins, pool[best])
		out.Collectibles = append(out.Collectibles, Collectible{Pos: pool[best], Kind: Coin})
		pool = slices.Delete(pool, best, best+1)
	}

	if len(pool) > 0 {
		best := 0
		for j, c := range pool {
			if Manhattan(c, Start) > Manhattan(pool[best], Start) {
				best = j
			}
		}
		out.Collectibles = append(out.Collectibles, Collectible{Pos: pool[best], Kind: Treasure})
		pool = slices.Delete(pool, best, best+1)
	}

	target := counts.Traps
	if target == 0 {
		target = 5 + g.Width()/4
	}
	target = min(target, len(pool))
	guard := newTrapGuard(g, out.Collectibles)
	for i := 0; i < target; i++ {
		var valid []int
		for j, c := range pool {
			if guard.safe(c) {
				valid = append(valid, j)
			}
		}
		if len(valid) == 0 {
			continue
		}
		j := valid[b.rng.Intn(len(valid))]
		out.Traps = append(out.Traps, Trap{
			Pos:    pool[j],
			Kind:   TrapKind(b.rng.Intn(2)),
			Active: true,
		})
		pool = slices.Delete(pool, j, j+1)
	}

	b.stage = StageEntitiesPlaced
	return out, nil
}

// candidates lists the floor cells reachable from Start, excluding Start,
// in row-major order.
func candidates(g *Grid) []Position {
	reach := Reachable(g, Start)
	var out []Position
	for _, p := range g.Floors() {
		if p != Start && reach.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// trapGuard answers whether a candidate can hold a trap. Traps stay Floor,
// so the grid and the uncollected set do not change between trap slots and
// each cell is checked at most once.
type trapGuard struct {
	g       *Grid
	targets []Position
	onPath  mapset.Set[Position]
	verdict map[Position]bool
}

// newTrapGuard marks the cells on the BFS-tree path from Start to every
// uncollected collectible. Walling any other cell leaves those paths
// intact.
func newTrapGuard(g *Grid, items []Collectible) *trapGuard {
	tg := &trapGuard{g: g, onPath: mapset.New[Position](), verdict: make(map[Position]bool)}
	for _, it := range items {
		if !it.Collected {
			tg.targets = append(tg.targets, it.Pos)
		}
	}

	parent := bfsTree(g, Start)
	for _, t := range tg.targets {
		for p, ok := t, true; ok && p != Start; p, ok = parent[p] {
			tg.onPath.Put(p)
		}
	}
	return tg
}

func (tg *trapGuard) safe(p Position) bool {
	if !tg.onPath.Has(p) {
		return true
	}
	ok, seen := tg.verdict[p]
	if !seen {
		ok = keepsCollectiblesReachable(tg.g, p, tg.targets)
		tg.verdict[p] = ok
	}
	return ok
}

// keepsCollectiblesReachable walls p off, checks that every target is still
// connected to Start, and restores the cell before returning.
func keepsCollectiblesReachable(g *Grid, p Position, targets []Position) bool {
	prev := g.At(p)
	g.Set(p, Wall)
	defer g.Set(p, prev)

	return reachesAll(g, Start, targets)
}

// minDistance returns the smallest Manhattan distance from p to any of
// others, or MaxInt when others is empty.
func minDistance(p Position, others []Position) int {
	best := math.MaxInt
	for _, o := range others {
		best = min(best, Manhattan(p, o))
	}
	return best
}
