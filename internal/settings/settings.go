// Package settings holds the player's audio preferences and persists them
// through the storage key/value table.
package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Step is the volume change per left/right press.
const Step = 0.1

// Storage keys.
const (
	KeyMusicVolume  = "music_volume"
	KeySoundVolume  = "sound_volume"
	KeyMusicEnabled = "music_enabled"
	KeySoundEnabled = "sound_enabled"
)

// Store is the subset of *storage.Store used here.
type Store interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// Settings are the audio preferences. Volumes are in [0, 1].
type Settings struct {
	MusicVolume  float64
	SoundVolume  float64
	MusicEnabled bool
	SoundEnabled bool
}

// Default returns the out-of-the-box preferences.
func Default() Settings {
	return Settings{
		MusicVolume:  0.5,
		SoundVolume:  0.7,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

// Clamped returns s with both volumes clamped to [0, 1] and rounded to
// one decimal.
func (s Settings) Clamped() Settings {
	s.MusicVolume = roundVolume(s.MusicVolume)
	s.SoundVolume = roundVolume(s.SoundVolume)
	return s
}

// AdjustMusic moves the music volume by steps * Step.
func (s *Settings) AdjustMusic(steps int) {
	s.MusicVolume = roundVolume(s.MusicVolume + float64(steps)*Step)
}

// AdjustSound moves the effects volume by steps * Step.
func (s *Settings) AdjustSound(steps int) {
	s.SoundVolume = roundVolume(s.SoundVolume + float64(steps)*Step)
}

// MusicLevel is the music volume actually applied: 0 when music is off.
func (s Settings) MusicLevel() float64 {
	if !s.MusicEnabled {
		return 0
	}
	return s.MusicVolume
}

// SoundLevel is the effects volume actually applied: 0 when sound is off.
func (s Settings) SoundLevel() float64 {
	if !s.SoundEnabled {
		return 0
	}
	return s.SoundVolume
}

func (s Settings) String() string {
	return fmt.Sprintf("music %s %.0f%%, sound %s %.0f%%",
		onOff(s.MusicEnabled), s.MusicVolume*100, onOff(s.SoundEnabled), s.SoundVolume*100)
}

// Load reads the settings from store. Missing keys keep their defaults.
// Malformed values also keep their defaults and are reported in the
// returned error alongside the usable settings.
func Load(store Store) (Settings, error) {
	s := Default()
	if store == nil {
		return s, nil
	}

	var errs []error
	readFloat := func(key string, dst *float64) {
		raw, ok, err := store.GetSetting(key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if !ok {
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("settings: %s: %w", key, err))
			return
		}
		*dst = v
	}
	readBool := func(key string, dst *bool) {
		raw, ok, err := store.GetSetting(key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if !ok {
			return
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("settings: %s: %w", key, err))
			return
		}
		*dst = v
	}

	readFloat(KeyMusicVolume, &s.MusicVolume)
	readFloat(KeySoundVolume, &s.SoundVolume)
	readBool(KeyMusicEnabled, &s.MusicEnabled)
	readBool(KeySoundEnabled, &s.SoundEnabled)

	return s.Clamped(), errors.Join(errs...)
}

// Save writes all four keys to store. A nil store is a no-op.
func (s Settings) Save(store Store) error {
	if store == nil {
		return nil
	}
	s = s.Clamped()
	pairs := []struct{ key, value string }{
		{KeyMusicVolume, strconv.FormatFloat(s.MusicVolume, 'f', 1, 64)},
		{KeySoundVolume, strconv.FormatFloat(s.SoundVolume, 'f', 1, 64)},
		{KeyMusicEnabled, strconv.FormatBool(s.MusicEnabled)},
		{KeySoundEnabled, strconv.FormatBool(s.SoundEnabled)},
	}
	for _, p := range pairs {
		if err := store.SetSetting(p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

func roundVolume(v float64) float64 {
	v = math.Round(v*10) / 10
	return math.Max(0, math.Min(1, v))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
