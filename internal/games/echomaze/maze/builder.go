package maze

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// ConnectivityThreshold is the minimum share of floor cells that must be
	// reachable from Start for a carved grid to be accepted.
	ConnectivityThreshold = 0.9

	// DefaultMaxAttempts caps both the carve loop and the regenerate-and-place
	// loop.
	DefaultMaxAttempts = 1000
)

var (
	// ErrGenerationFailed is returned when no grid met the connectivity
	// threshold within the attempt cap, or the dimensions cannot hold Start.
	ErrGenerationFailed = errors.New("maze: generation failed")

	// ErrPlacementFailed is returned when no generated grid offered enough
	// reachable floor cells for the requested entities.
	ErrPlacementFailed = errors.New("maze: placement failed")
)

// Stage tracks where a Builder is in the build pipeline.
type Stage int

const (
	StageNotGenerated Stage = iota
	StageGenerated
	StageEntitiesPlaced
)

func (s Stage) String() string {
	switch s {
	case StageGenerated:
		return "generated"
	case StageEntitiesPlaced:
		return "entities-placed"
	default:
		return "not-generated"
	}
}

// stepDirs are the carve moves. Each jumps two cells so a wall stays
// between corridors.
var stepDirs = [4]Position{{0, 2}, {2, 0}, {0, -2}, {-2, 0}}

// Builder produces grids and levels from a single random source.
// It is not safe for concurrent use.
type Builder struct {
	rng         *rand.Rand
	maxAttempts int
	stage       Stage
}

// NewBuilder returns a builder drawing all randomness from rng.
func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{rng: rng, maxAttempts: DefaultMaxAttempts}
}

// SetMaxAttempts overrides the attempt cap. Values below 1 are ignored.
func (b *Builder) SetMaxAttempts(n int) {
	if n >= 1 {
		b.maxAttempts = n
	}
}

// MaxAttempts returns the current attempt cap.
func (b *Builder) MaxAttempts() int { return b.maxAttempts }

// Stage returns the builder's current stage.
func (b *Builder) Stage() Stage { return b.stage }

// Generate carves a width×height grid until one reaches the connectivity
// threshold. The returned grid always has Start as Floor.
func (b *Builder) Generate(width, height int) (*Grid, error) {
	b.stage = StageNotGenerated
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: %dx%d cannot hold the start cell", ErrGenerationFailed, width, height)
	}

	for attempt := 0; attempt < b.maxAttempts; attempt++ {
		g := NewGrid(width, height)
		b.carve(g, Start)
		if Connectivity(g, Start) >= ConnectivityThreshold {
			b.stage = StageGenerated
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %dx%d after %d attempts", ErrGenerationFailed, width, height, b.maxAttempts)
}

// carveFrame is one level of the depth-first walk: the cell being
// expanded, its shuffled directions, and how many have been tried.
type carveFrame struct {
	at   Position
	dirs [4]Position
	next int
}

// carve runs the randomized backtracker from origin with an explicit stack.
// Directions are shuffled when a cell is entered, so the visit order is the
// same as the recursive formulation.
func (b *Builder) carve(g *Grid, origin Position) {
	stack := []carveFrame{b.enter(g, origin)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		target := top.at.Add(d.X, d.Y)
		if !g.In(target) || g.At(target) != Wall {
			continue
		}
		g.Set(top.at.Add(d.X/2, d.Y/2), Floor)
		stack = append(stack, b.enter(g, target))
	}
}

func (b *Builder) enter(g *Grid, p Position) carveFrame {
	g.Set(p, Floor)
	f := carveFrame{at: p, dirs: stepDirs}
	b.rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}
