package core

// Event is something noteworthy that happened during a tick.
// The platform forwards events to the audio layer; games never play sound.
type Event int

const (
	EventNone Event = iota
	EventStep
	EventCoin
	EventKey
	EventTreasure
	EventTrap
	EventEcho
	EventTimeout
	EventFlip
	EventScore
	EventCrash
	EventStart
	EventShoot
	EventHit
	EventMiss
	EventPowerUp
	EventDamage
	EventRound
)

var eventNames = [...]string{
	EventNone:     "none",
	EventStep:     "step",
	EventCoin:     "coin",
	EventKey:      "key",
	EventTreasure: "treasure",
	EventTrap:     "trap",
	EventEcho:     "echo",
	EventTimeout:  "timeout",
	EventFlip:     "flip",
	EventScore:    "score",
	EventCrash:    "crash",
	EventStart:    "start",
	EventShoot:    "shoot",
	EventHit:      "hit",
	EventMiss:     "miss",
	EventPowerUp:  "power_up",
	EventDamage:   "damage",
	EventRound:    "round",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}
