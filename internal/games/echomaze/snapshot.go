package echomaze

import "github.com/vovakirdan/neon-arcade/internal/games/echomaze/maze"

// PhaseTooSmall is reported by Snapshot while the window cannot fit the maze.
const PhaseTooSmall Phase = "paused_small_window"

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick       uint64
	Phase      Phase
	Paused     bool
	PlayerX    int
	PlayerY    int
	Keys       int
	KeysTotal  int
	Coins      int
	Score      int
	TimeLeft   int // Ticks
	EchoTimer  int
	Radius     int
	Footprints int
	GridW      int
	GridH      int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Phase:      g.phase,
		Paused:     g.paused,
		PlayerX:    g.player.X,
		PlayerY:    g.player.Y,
		Keys:       g.keys,
		Coins:      g.coins,
		Score:      g.score,
		TimeLeft:   g.timeLeft,
		EchoTimer:  g.echoTimer,
		Radius:     g.radius,
		Footprints: len(g.footprints),
	}
	if g.tooSmall {
		s.Phase = PhaseTooSmall
	}
	if g.level != nil {
		s.KeysTotal = g.level.Count(maze.Key)
		s.GridW = g.level.Grid.Width()
		s.GridH = g.level.Grid.Height()
	}
	return s
}
