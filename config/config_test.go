package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Texts) == 0 {
		t.Fatal("default config has no texts")
	}
	if cfg.PitchCV != 4.333 {
		t.Errorf("default pitch cv = %v, want 4.333", cfg.PitchCV)
	}
	if cfg.TextIndex != 0 {
		t.Errorf("default text index = %d, want 0", cfg.TextIndex)
	}
	if cfg.WPM <= 0 {
		t.Errorf("default wpm = %d, want positive", cfg.WPM)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("missing file did not yield defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.PitchCV = 3.5
	cfg.TextIndex = 2
	cfg.WPM = 15
	cfg.MIDI.PortName = "USB MIDI"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadFromBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyDefaultsClampsIndex(t *testing.T) {
	cfg := &Config{TextIndex: 99, Texts: []string{"SOS"}}
	cfg.applyDefaults()
	if cfg.TextIndex != 0 {
		t.Errorf("text index = %d, want 0", cfg.TextIndex)
	}
	if cfg.PitchCV != 4.333 {
		t.Errorf("pitch cv = %v, want default", cfg.PitchCV)
	}
}
