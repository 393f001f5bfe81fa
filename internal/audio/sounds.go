package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Sound identifies a synthesized effect.
type Sound int

const (
	SoundStep Sound = iota
	SoundCoin
	SoundKey
	SoundTreasure
	SoundTrap
	SoundEcho
	SoundTimeout
	SoundFlip
	SoundScore
	SoundCrash
	SoundStart
	SoundShoot
	SoundHit
	SoundMiss
	SoundPowerUp
	SoundDamage
	SoundRound
)

var soundNames = [...]string{
	SoundStep:     "step",
	SoundCoin:     "coin",
	SoundKey:      "key",
	SoundTreasure: "treasure",
	SoundTrap:     "trap",
	SoundEcho:     "echo",
	SoundTimeout:  "timeout",
	SoundFlip:     "flip",
	SoundScore:    "score",
	SoundCrash:    "crash",
	SoundStart:    "start",
	SoundShoot:    "shoot",
	SoundHit:      "hit",
	SoundMiss:     "miss",
	SoundPowerUp:  "power_up",
	SoundDamage:   "damage",
	SoundRound:    "round",
}

func (s Sound) String() string {
	if s < 0 || int(s) >= len(soundNames) {
		return "unknown"
	}
	return soundNames[s]
}

var eventSounds = map[core.Event]Sound{
	core.EventStep:     SoundStep,
	core.EventCoin:     SoundCoin,
	core.EventKey:      SoundKey,
	core.EventTreasure: SoundTreasure,
	core.EventTrap:     SoundTrap,
	core.EventEcho:     SoundEcho,
	core.EventTimeout:  SoundTimeout,
	core.EventFlip:     SoundFlip,
	core.EventScore:    SoundScore,
	core.EventCrash:    SoundCrash,
	core.EventStart:    SoundStart,
	core.EventShoot:    SoundShoot,
	core.EventHit:      SoundHit,
	core.EventMiss:     SoundMiss,
	core.EventPowerUp:  SoundPowerUp,
	core.EventDamage:   SoundDamage,
	core.EventRound:    SoundRound,
}

// SoundFor returns the effect for a game event.
func SoundFor(e core.Event) (Sound, bool) {
	s, ok := eventSounds[e]
	return s, ok
}

// musicNotes is an A minor arpeggio, A3 C4 E4 A4 E4 C4.
var musicNotes = []float64{220.00, 261.63, 329.63, 440.00, 329.63, 261.63}

const musicNoteLen = 180 * time.Millisecond

// Synthesize builds a fresh, finite streamer for s at unity gain.
func Synthesize(s Sound) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch s {
	case SoundStep:
		return newVolume(tone(180, ms(40), WaveTriangle), 0.3)
	case SoundCoin:
		return beep.Seq(tone(987.77, ms(70), WaveSquare), tone(1318.51, ms(160), WaveSquare))
	case SoundKey:
		return beep.Seq(tone(660, ms(60), WaveSine), tone(880, ms(60), WaveSine), tone(1320, ms(140), WaveSine))
	case SoundTreasure:
		return beep.Seq(
			tone(523.25, ms(90), WaveSquare),
			tone(659.25, ms(90), WaveSquare),
			tone(783.99, ms(90), WaveSquare),
			tone(1046.50, ms(320), WaveSquare),
		)
	case SoundTrap:
		return beep.Mix(tone(110, ms(350), WaveSaw), newVolume(tone(1, ms(250), WaveNoise), 0.5))
	case SoundEcho:
		return beep.Mix(
			NewEnvelope(NewOscillator(1200, ms(450), WaveSine, SampleRate), ms(450), ms(2), ms(430), SampleRate),
			newVolume(NewEnvelope(NewOscillator(600, ms(450), WaveSine, SampleRate), ms(450), ms(2), ms(430), SampleRate), 0.5),
		)
	case SoundTimeout:
		return beep.Seq(tone(440, ms(150), WaveSaw), tone(330, ms(150), WaveSaw), tone(220, ms(400), WaveSaw))
	case SoundFlip:
		return beep.Seq(tone(330, ms(40), WaveSquare), tone(495, ms(60), WaveSquare))
	case SoundScore:
		return tone(880, ms(80), WaveSine)
	case SoundCrash:
		return beep.Mix(tone(2, ms(400), WaveNoise), tone(80, ms(400), WaveSaw))
	case SoundStart:
		return beep.Seq(tone(523.25, ms(80), WaveSine), tone(659.25, ms(80), WaveSine), tone(783.99, ms(160), WaveSine))
	case SoundShoot:
		return newVolume(beep.Seq(tone(1400, ms(25), WaveSquare), tone(900, ms(35), WaveSquare)), 0.4)
	case SoundHit:
		return beep.Seq(tone(784, ms(50), WaveSquare), tone(1175, ms(90), WaveSquare))
	case SoundMiss:
		return tone(150, ms(120), WaveTriangle)
	case SoundPowerUp:
		return beep.Seq(
			tone(523.25, ms(50), WaveSine),
			tone(783.99, ms(50), WaveSine),
			tone(1046.50, ms(50), WaveSine),
			tone(1567.98, ms(120), WaveSine),
		)
	case SoundDamage:
		return beep.Mix(tone(90, ms(200), WaveSaw), newVolume(tone(3, ms(150), WaveNoise), 0.4))
	case SoundRound:
		return beep.Seq(tone(392, ms(120), WaveSine), tone(523.25, ms(240), WaveSine))
	default:
		return beep.Silence(0)
	}
}
