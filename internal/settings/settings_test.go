package settings

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/storage"
)

type memStore map[string]string

func (m memStore) GetSetting(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStore) SetSetting(key, value string) error {
	m[key] = value
	return nil
}

func TestDefaults(t *testing.T) {
	s := Default()
	if s.MusicVolume != 0.5 || s.SoundVolume != 0.7 || !s.MusicEnabled || !s.SoundEnabled {
		t.Errorf("Default() = %+v", s)
	}
}

func TestAdjustClamps(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		steps int
		want  float64
	}{
		{"up one", 0.5, 1, 0.6},
		{"down two", 0.5, -2, 0.3},
		{"ceiling", 0.9, 5, 1.0},
		{"floor", 0.1, -3, 0.0},
		{"ten small steps", 0.0, 10, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{MusicVolume: tt.start, SoundVolume: tt.start}
			s.AdjustMusic(tt.steps)
			s.AdjustSound(tt.steps)
			if s.MusicVolume != tt.want || s.SoundVolume != tt.want {
				t.Errorf("got music=%v sound=%v, want %v", s.MusicVolume, s.SoundVolume, tt.want)
			}
		})
	}
}

func TestLevelsRespectToggles(t *testing.T) {
	s := Default()
	s.MusicEnabled = false
	if s.MusicLevel() != 0 {
		t.Errorf("MusicLevel with music off = %v", s.MusicLevel())
	}
	if s.SoundLevel() != 0.7 {
		t.Errorf("SoundLevel = %v, want 0.7", s.SoundLevel())
	}
}

func TestLoadNilStore(t *testing.T) {
	s, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if s != Default() {
		t.Errorf("Load(nil) = %+v, want defaults", s)
	}
}

func TestLoadMalformedKeepsDefault(t *testing.T) {
	store := memStore{
		KeyMusicVolume:  "loud",
		KeySoundVolume:  "3.5",
		KeyMusicEnabled: "false",
	}
	s, err := Load(store)
	if err == nil {
		t.Error("expected an error for the malformed music volume")
	}
	if s.MusicVolume != 0.5 {
		t.Errorf("MusicVolume = %v, want default 0.5", s.MusicVolume)
	}
	if s.SoundVolume != 1.0 {
		t.Errorf("SoundVolume = %v, want clamped 1.0", s.SoundVolume)
	}
	if s.MusicEnabled {
		t.Error("MusicEnabled should load as false")
	}
}

func TestSaveLoadSQLite(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	want := Settings{MusicVolume: 0.2, SoundVolume: 0.9, MusicEnabled: false, SoundEnabled: true}
	if err := want.Save(store); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
