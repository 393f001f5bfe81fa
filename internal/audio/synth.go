// Package audio synthesizes the arcade's sound effects and background
// music with beep. Nothing here talks to a device directly: output goes to
// a Sink, and the speaker subpackage provides the real one.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is used for every synthesized stream.
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// sample returns the value of wave w at phase p in [0, 1).
func sample(w WaveType, p float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (p - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// oscillator streams a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator returns a tone of the given frequency and length. Noise
// ignores freq and is seeded from freq so it stays reproducible.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		v := sample(o.wave, o.phase, o.rng)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s over duration with the given attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := max(e.total-e.release, e.attack)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		switch {
		case e.position < e.attack && e.attack > 0:
			vol = float64(e.position) / float64(e.attack)
		case e.position >= releaseStart && e.release > 0:
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// tone is an oscillator shaped by a short envelope.
func tone(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	attack := min(5*time.Millisecond, d/4)
	release := d / 2
	return NewEnvelope(NewOscillator(freq, d, wave, SampleRate), d, attack, release, SampleRate)
}

// newVolume wraps s in a volume effect. Level 0 is silent; log2(0) is -Inf.
func newVolume(s beep.Streamer, level float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLevel(v, level)
	return v
}

func setLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(level)
	v.Silent = false
}

// arpeggio cycles through notes forever. It never ends on its own, so it is
// used as the music bed under a beep.Ctrl.
type arpeggio struct {
	notes    []float64
	noteLen  int
	position int
	phase    float64
	rate     beep.SampleRate
}

func newArpeggio(notes []float64, noteLen time.Duration, rate beep.SampleRate) *arpeggio {
	return &arpeggio{notes: notes, noteLen: rate.N(noteLen), rate: rate}
}

func (a *arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	if len(a.notes) == 0 || a.noteLen == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	for i := range samples {
		idx := (a.position / a.noteLen) % len(a.notes)
		within := a.position % a.noteLen

		// Pluck shape: fast decay per note keeps the bed out of the way.
		env := math.Exp(-4 * float64(within) / float64(a.noteLen))
		v := 0.35 * env * sample(WaveTriangle, a.phase, nil)
		samples[i][0] = v
		samples[i][1] = v

		a.phase += a.notes[idx] / float64(a.rate)
		a.phase -= math.Floor(a.phase)
		a.position++
	}
	return len(samples), true
}

func (a *arpeggio) Err() error { return nil }
