package storage

import "testing"

func TestSettingsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.GetSetting("music_volume"); err != nil || ok {
		t.Fatalf("unset key: ok=%v err=%v", ok, err)
	}

	if err := store.SetSetting("music_volume", "0.5"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetSetting("music_volume", "0.8"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if err := store.SetSetting("sound_enabled", "false"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := store.GetSetting("music_volume")
	if err != nil || !ok || v != "0.8" {
		t.Errorf("GetSetting = %q, %v, %v; want 0.8, true, nil", v, ok, err)
	}

	all, err := store.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all["sound_enabled"] != "false" {
		t.Errorf("Settings() = %v", all)
	}
}
