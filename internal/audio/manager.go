package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/settings"
)

// Sink receives the manager's output stream. Streaming happens on the
// sink's own goroutine, so every change to the live graph happens between
// Lock and Unlock.
type Sink interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Manager owns the mix graph:
//
//	root mixer
//	├── volume(sfx) ── sfx mixer ── one-shot effects
//	└── volume(music) ── ctrl ── arpeggio
//
// A nil *Manager is valid and silent.
type Manager struct {
	mu       sync.Mutex
	sink     Sink
	settings settings.Settings
	started  bool

	root     *beep.Mixer
	sfx      *beep.Mixer
	sfxVol   *effects.Volume
	music    *beep.Ctrl
	musicVol *effects.Volume
}

// NewManager builds a manager for sink. A nil sink yields a nil manager.
func NewManager(sink Sink, s settings.Settings) *Manager {
	if sink == nil {
		return nil
	}
	m := &Manager{
		sink:     sink,
		settings: s.Clamped(),
		root:     &beep.Mixer{},
		sfx:      &beep.Mixer{},
	}
	m.sfxVol = newVolume(m.sfx, m.settings.SoundLevel())
	m.music = &beep.Ctrl{
		Streamer: newArpeggio(musicNotes, musicNoteLen, SampleRate),
		Paused:   !m.settings.MusicEnabled,
	}
	m.musicVol = newVolume(m.music, m.settings.MusicLevel())
	m.root.Add(m.sfxVol, m.musicVol)
	return m
}

// Start hands the mix graph to the sink. Calling it again does nothing.
func (m *Manager) Start() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true
	m.sink.Play(m.root)
}

// Play queues a one-shot effect. Effects are dropped while sound is off.
func (m *Manager) Play(s Sound) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started || m.settings.SoundLevel() == 0 {
		return
	}
	st := Synthesize(s)
	m.sink.Lock()
	m.sfx.Add(st)
	m.sink.Unlock()
}

// HandleEvents plays the effect for each event that has one.
func (m *Manager) HandleEvents(events []core.Event) {
	if m == nil {
		return
	}
	for _, e := range events {
		if s, ok := SoundFor(e); ok {
			m.Play(s)
		}
	}
}

// Apply switches to new settings, updating volumes and the music state.
func (m *Manager) Apply(s settings.Settings) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = s.Clamped()
	m.sink.Lock()
	setLevel(m.sfxVol, m.settings.SoundLevel())
	setLevel(m.musicVol, m.settings.MusicLevel())
	m.music.Paused = !m.settings.MusicEnabled
	if !m.settings.SoundEnabled {
		m.sfx.Clear()
	}
	m.sink.Unlock()
}

// SetMusicPaused pauses or resumes the music bed, for example while a game
// is paused. Music that is switched off in the settings stays off.
func (m *Manager) SetMusicPaused(paused bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink.Lock()
	m.music.Paused = paused || !m.settings.MusicEnabled
	m.sink.Unlock()
}

// Settings returns the settings currently applied.
func (m *Manager) Settings() settings.Settings {
	if m == nil {
		return settings.Default()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// Pending returns how many one-shot effects are still playing.
func (m *Manager) Pending() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink.Lock()
	defer m.sink.Unlock()
	return m.sfx.Len()
}

// Stop silences everything. The sink itself is left to its owner.
func (m *Manager) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink.Lock()
	m.sfx.Clear()
	m.music.Paused = true
	m.sink.Unlock()
}
