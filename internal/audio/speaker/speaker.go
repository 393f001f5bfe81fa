// Package speaker connects the audio manager to the system's sound device.
// It is the only package that imports beep's speaker, which holds global
// state and must be initialized once per process.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// BufferDuration is the device buffer length.
const BufferDuration = 100 * time.Millisecond

var (
	initOnce sync.Once
	initErr  error
)

// Speaker is an audio.Sink backed by the default output device.
type Speaker struct{}

// Open initializes the device at rate. Later calls return the result of
// the first one.
func Open(rate beep.SampleRate) (*Speaker, error) {
	initOnce.Do(func() {
		if err := speaker.Init(rate, rate.N(BufferDuration)); err != nil {
			initErr = fmt.Errorf("speaker: init: %w", err)
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return &Speaker{}, nil
}

func (*Speaker) Play(s beep.Streamer) { speaker.Play(s) }

func (*Speaker) Lock() { speaker.Lock() }

func (*Speaker) Unlock() { speaker.Unlock() }

// Close stops playback and releases the device.
func (*Speaker) Close() {
	speaker.Close()
}
