package gravityflip

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick      int
	Phase     Phase
	Paused    bool
	PlayerY   float64
	PlayerVel float64
	Flipped   bool
	Score     int
	Best      int
	Speed     float64
	Pipes     int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := g.phase
	if g.tooSmall {
		phase = PhaseTooSmall
	}
	return Snapshot{
		Tick:      g.tick,
		Phase:     phase,
		Paused:    g.paused,
		PlayerY:   g.playerY,
		PlayerVel: g.playerVel,
		Flipped:   g.flipped,
		Score:     g.score,
		Best:      g.best,
		Speed:     g.speed,
		Pipes:     len(g.pipes.Pipes()),
	}
}
