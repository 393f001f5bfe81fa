package maze

import (
	"errors"
	"strings"
	"testing"

	"github.com/zyedidia/generic/mapset"
)

func kinds(p Placement) map[CollectibleKind]int {
	out := map[CollectibleKind]int{}
	for _, c := range p.Collectibles {
		out[c.Kind]++
	}
	return out
}

func TestBuildScenario(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		b := newTestBuilder(seed)
		lvl, err := b.Build(20, 15, Counts{Keys: 3, Coins: 10, Traps: 8})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if b.Stage() != StageEntitiesPlaced {
			t.Errorf("seed %d: stage = %v, want %v", seed, b.Stage(), StageEntitiesPlaced)
		}

		got := kinds(Placement{Collectibles: lvl.Collectibles})
		if got[Key] != 3 || got[Coin] != 10 || got[Treasure] != 1 {
			t.Errorf("seed %d: kinds = %v, want 3 keys, 10 coins, 1 treasure", seed, got)
		}
		if len(lvl.Traps) > 8 {
			t.Errorf("seed %d: %d traps, want at most 8", seed, len(lvl.Traps))
		}
		checkLevel(t, lvl)
	}
}

func TestBuildDefaultTrapTarget(t *testing.T) {
	lvl, err := newTestBuilder(9).Build(20, 15, Counts{Keys: 3, Coins: 10})
	if err != nil {
		t.Fatal(err)
	}
	if limit := 5 + 20/4; len(lvl.Traps) > limit {
		t.Errorf("%d traps, want at most %d", len(lvl.Traps), limit)
	}
	checkLevel(t, lvl)
}

// checkLevel verifies the placement invariants shared by every level.
func checkLevel(t *testing.T, lvl *Level) {
	t.Helper()
	g := lvl.Grid
	occupied := mapset.New[Position]()
	claim := func(p Position, what string) {
		if !g.In(p) || !g.IsFloor(p) {
			t.Errorf("%s at %v is not an in-bounds floor cell", what, p)
		}
		if p == Start {
			t.Errorf("%s placed on the start cell", what)
		}
		if occupied.Has(p) {
			t.Errorf("%s at %v shares a cell", what, p)
		}
		occupied.Put(p)
	}

	for _, c := range lvl.Collectibles {
		claim(c.Pos, c.Kind.String())
		if !IsReachable(g, Start, c.Pos) {
			t.Errorf("%s at %v unreachable from start", c.Kind, c.Pos)
		}
		if c.Collected {
			t.Errorf("%s at %v starts collected", c.Kind, c.Pos)
		}
	}
	for _, tr := range lvl.Traps {
		claim(tr.Pos, tr.Kind.String())
		if !tr.Active {
			t.Errorf("trap at %v starts inactive", tr.Pos)
		}
		walled := g.Clone()
		walled.Set(tr.Pos, Wall)
		for _, c := range lvl.Collectibles {
			if !IsReachable(walled, Start, c.Pos) {
				t.Errorf("walling trap %v cuts off %s at %v", tr.Pos, c.Kind, c.Pos)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	counts := Counts{Keys: 3, Coins: 10}
	a, err := newTestBuilder(5).Build(20, 15, counts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestBuilder(5).Build(20, 15, counts)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("same seed produced different levels:\n%s\n\n%s", a, b)
	}
}

func TestBuildPlacementFailed(t *testing.T) {
	// A 3x3 grid only ever has the start cell, so no candidate exists.
	b := newTestBuilder(1)
	b.SetMaxAttempts(5)
	_, err := b.Build(3, 3, Counts{Keys: 1})
	if !errors.Is(err, ErrPlacementFailed) {
		t.Fatalf("Build error = %v, want ErrPlacementFailed", err)
	}
	if b.Stage() != StageNotGenerated {
		t.Errorf("stage = %v, want %v", b.Stage(), StageNotGenerated)
	}
}

func TestBuildGenerationErrorPassesThrough(t *testing.T) {
	_, err := newTestBuilder(1).Build(1, 1, Counts{})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("Build error = %v, want ErrGenerationFailed", err)
	}
}

func TestBuildNegativeCounts(t *testing.T) {
	_, err := newTestBuilder(1).Build(20, 15, Counts{Keys: -1})
	if !errors.Is(err, ErrPlacementFailed) {
		t.Errorf("Build error = %v, want ErrPlacementFailed", err)
	}
}

func TestPlaceEntitiesTooFewCandidates(t *testing.T) {
	g := parseGrid(t, `
######
#....#
######`)
	b := newTestBuilder(1)
	_, err := b.PlaceEntities(g, Counts{Keys: 3, Coins: 1})
	if !errors.Is(err, errTooFewCandidates) {
		t.Fatalf("PlaceEntities error = %v, want errTooFewCandidates", err)
	}
	if b.Stage() != StageNotGenerated {
		t.Errorf("stage = %v, want %v", b.Stage(), StageNotGenerated)
	}
}

func TestKeysFarthestFirst(t *testing.T) {
	g := parseGrid(t, `
#######
#.....#
#######`)
	p, err := newTestBuilder(1).PlaceEntities(g, Counts{Keys: 2})
	if err != nil {
		t.Fatal(err)
	}

	want := []Collectible{
		{Pos: Position{5, 1}, Kind: Key},
		{Pos: Position{2, 1}, Kind: Key},
		{Pos: Position{4, 1}, Kind: Treasure},
	}
	if len(p.Collectibles) != len(want) {
		t.Fatalf("collectibles = %+v, want %+v", p.Collectibles, want)
	}
	for i := range want {
		if p.Collectibles[i] != want[i] {
			t.Errorf("collectible %d = %+v, want %+v", i, p.Collectibles[i], want[i])
		}
	}
	// The only spare cell sits between the start and the far key.
	if len(p.Traps) != 0 {
		t.Errorf("traps = %+v, want none", p.Traps)
	}
}

func TestCoinsSpreadFromKeys(t *testing.T) {
	g := parseGrid(t, `
#########
#.......#
#########`)
	p, err := newTestBuilder(1).PlaceEntities(g, Counts{Keys: 1, Coins: 2})
	if err != nil {
		t.Fatal(err)
	}

	want := []Position{{7, 1}, {2, 1}, {4, 1}, {6, 1}}
	if len(p.Collectibles) != len(want) {
		t.Fatalf("collectibles = %+v", p.Collectibles)
	}
	for i, pos := range want {
		if p.Collectibles[i].Pos != pos {
			t.Errorf("collectible %d (%s) at %v, want %v", i, p.Collectibles[i].Kind, p.Collectibles[i].Pos, pos)
		}
	}
}

func TestTrapsOnlyOnSideBranches(t *testing.T) {
	// A corridor with dead-end alcoves: only the alcoves can hold traps
	// without cutting the corridor.
	g := parseGrid(t, `
#########
#.......#
##.#.#.##
#########`)
	p, err := newTestBuilder(2).PlaceEntities(g, Counts{Keys: 1, Traps: 5})
	if err != nil {
		t.Fatal(err)
	}
	alcoves := mapset.New[Position]()
	for _, a := range []Position{{2, 2}, {4, 2}, {6, 2}} {
		alcoves.Put(a)
	}
	for _, tr := range p.Traps {
		if !alcoves.Has(tr.Pos) {
			t.Errorf("trap at %v is not in an alcove", tr.Pos)
		}
	}
}

func TestPlaceEntitiesRestoresGrid(t *testing.T) {
	g, err := newTestBuilder(11).Generate(20, 15)
	if err != nil {
		t.Fatal(err)
	}
	before := g.String()
	if _, err := newTestBuilder(11).PlaceEntities(g, Counts{Keys: 3, Coins: 10}); err != nil {
		t.Fatal(err)
	}
	if g.String() != before {
		t.Error("PlaceEntities left the grid modified")
	}
}

func TestLevelHelpers(t *testing.T) {
	g := parseGrid(t, `
#######
#.....#
#######`)
	lvl := &Level{
		Grid:  g,
		Start: Start,
		Collectibles: []Collectible{
			{Pos: Position{2, 1}, Kind: Coin},
			{Pos: Position{3, 1}, Kind: Key, Collected: true},
			{Pos: Position{5, 1}, Kind: Treasure},
		},
		Traps: []Trap{{Pos: Position{4, 1}, Kind: Pit, Active: true}},
	}

	if lvl.Count(Key) != 1 || lvl.Remaining(Key) != 0 {
		t.Errorf("keys count/remaining = %d/%d, want 1/0", lvl.Count(Key), lvl.Remaining(Key))
	}
	if i := lvl.CollectibleAt(Position{5, 1}); i != 2 {
		t.Errorf("CollectibleAt(treasure) = %d, want 2", i)
	}
	if i := lvl.CollectibleAt(Position{1, 1}); i != -1 {
		t.Errorf("CollectibleAt(start) = %d, want -1", i)
	}
	if i := lvl.TrapAt(Position{4, 1}); i != 0 {
		t.Errorf("TrapAt = %d, want 0", i)
	}

	want := "#######\n#S$.OT#\n#######"
	if got := lvl.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(lvl.String(), "K") {
		t.Error("collected key still drawn")
	}
}

// trapSafeSlow walls p off and floods the whole grid, the way the guard
// would without its path filter or cache.
func trapSafeSlow(g *Grid, p Position, targets []Position) bool {
	prev := g.At(p)
	g.Set(p, Wall)
	defer g.Set(p, prev)
	reach := Reachable(g, Start)
	for _, t := range targets {
		if !reach.Has(t) {
			return false
		}
	}
	return true
}

func TestTrapGuardMatchesFullFlood(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		b := newTestBuilder(seed)
		g, err := b.Generate(21, 15)
		if err != nil {
			t.Fatal(err)
		}
		p, err := b.PlaceEntities(g, Counts{Keys: 3, Coins: 8, Traps: 1})
		if err != nil {
			t.Fatal(err)
		}
		before := g.String()
		var targets []Position
		for _, c := range p.Collectibles {
			targets = append(targets, c.Pos)
		}

		guard := newTrapGuard(g, p.Collectibles)
		for _, c := range candidates(g) {
			want := trapSafeSlow(g, c, targets)
			// Ask twice so the cached answer is checked too.
			for range 2 {
				if got := guard.safe(c); got != want {
					t.Fatalf("seed %d: safe(%v) = %v, want %v", seed, c, got, want)
				}
			}
		}
		if g.String() != before {
			t.Fatalf("seed %d: guard left the grid modified", seed)
		}
	}
}

func TestTrapGuardSkipsCollected(t *testing.T) {
	g := parseGrid(t, `
#######
#.....#
#######`)
	items := []Collectible{{Pos: Position{5, 1}, Kind: Key, Collected: true}}
	guard := newTrapGuard(g, items)
	if !guard.safe(Position{3, 1}) {
		t.Error("corridor cell blocked for a collected key")
	}

	items[0].Collected = false
	guard = newTrapGuard(g, items)
	if guard.safe(Position{3, 1}) {
		t.Error("corridor cell allowed in front of an uncollected key")
	}
}

func TestBuildLargeLevel(t *testing.T) {
	if testing.Short() {
		t.Skip("large maze")
	}
	lvl, err := newTestBuilder(9).Build(101, 61, Counts{Keys: 5, Coins: 40, Traps: 60})
	if err != nil {
		t.Fatal(err)
	}
	if len(lvl.Traps) == 0 {
		t.Fatal("no traps placed")
	}
	items := mapset.New[Position]()
	var targets []Position
	for _, c := range lvl.Collectibles {
		items.Put(c.Pos)
		targets = append(targets, c.Pos)
	}
	for _, tr := range lvl.Traps {
		if tr.Pos == Start || items.Has(tr.Pos) {
			t.Errorf("trap at %v overlaps start or a collectible", tr.Pos)
		}
		if !trapSafeSlow(lvl.Grid, tr.Pos, targets) {
			t.Errorf("trap at %v cuts off a collectible", tr.Pos)
		}
	}
}
