package timeloop

import "math"

// Enemy homes in on the base. Positions are play-area cells.
type Enemy struct {
	X, Y float64
	HP   int
}

// Cell returns the cell the enemy is drawn in and hit in.
func (e Enemy) Cell() (int, int) {
	return int(math.Round(e.X)), int(math.Round(e.Y))
}

// Bullet travels in a straight line until it hits an enemy or leaves the
// play area.
type Bullet struct {
	X, Y   int
	DX, DY int
	Echo   bool // Fired by a replayed defender
}

// move is one tick of defender input, the unit a loop records.
type move struct {
	dx, dy int
	fire   bool
}

// Defender is the player or an echo replaying an earlier round.
type Defender struct {
	X, Y         int
	FaceX, FaceY int
	cooldown     int
	track        []move // Replayed input, nil for the player
}

// RoundStats counts what the player did during one loop. Echo shots are
// not counted.
type RoundStats struct {
	DamageDealt int
	Defeated    int
	ShotsFired  int
}

// Efficiency returns defeated enemies per shot, in percent.
func (s RoundStats) Efficiency() int {
	if s.ShotsFired == 0 {
		return 0
	}
	return 100 * s.Defeated / s.ShotsFired
}
