package colormatch

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick       int
	Phase      Phase
	Paused     bool
	PlayerX    int
	Color      int
	Score      int
	Best       int
	Lives      int
	Level      int
	Combo      int
	ShotsFired int
	ShotsHit   int
	Targets    int
	Shots      int
	PowerUps   int
	Rainbow    bool
	Slow       bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := g.phase
	if g.tooSmall {
		phase = PhaseTooSmall
	}
	return Snapshot{
		Tick:       g.tick,
		Phase:      phase,
		Paused:     g.paused,
		PlayerX:    g.playerX,
		Color:      g.color,
		Score:      g.score,
		Best:       g.best,
		Lives:      g.lives,
		Level:      g.level,
		Combo:      g.combo,
		ShotsFired: g.shotsFired,
		ShotsHit:   g.shotsHit,
		Targets:    len(g.targets),
		Shots:      len(g.shots),
		PowerUps:   len(g.powerUps),
		Rainbow:    g.rainbow(),
		Slow:       g.slow(),
	}
}
