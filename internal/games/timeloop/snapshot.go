package timeloop

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick      int
	Elapsed   int
	Phase     Phase
	Paused    bool
	Won       bool
	Round     int
	TicksLeft int
	Health    int
	Score     int
	Best      int
	PlayerX   int
	PlayerY   int
	Echoes    int
	Enemies   int
	Bullets   int
	Stats     RoundStats
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := g.phase
	if g.tooSmall {
		phase = PhaseTooSmall
	}
	return Snapshot{
		Tick:      g.tick,
		Elapsed:   g.elapsed,
		Phase:     phase,
		Paused:    g.paused,
		Won:       g.won,
		Round:     g.round,
		TicksLeft: g.ticksLeft,
		Health:    g.health,
		Score:     g.score,
		Best:      g.best,
		PlayerX:   g.player.X,
		PlayerY:   g.player.Y,
		Echoes:    len(g.echoes),
		Enemies:   len(g.enemies),
		Bullets:   len(g.bullets),
		Stats:     g.stats,
	}
}
