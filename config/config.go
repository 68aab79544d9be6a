package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MIDIConfig defines the optional hardware output
type MIDIConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  uint8  `json:"channel,omitempty"`
}

// Config is the persisted application state: the text library, the
// committed pitch CV and text selection, plus shell settings the core
// never sees.
type Config struct {
	PitchCV   float64  `json:"pitchCV"`
	TextIndex int      `json:"textIndex"`
	Texts     []string `json:"texts"`

	WPM  int        `json:"wpm,omitempty"` // internal clock rate
	MIDI MIDIConfig `json:"midi,omitempty"`
}

// DefaultConfig returns the stock text library and pitch
func DefaultConfig() *Config {
	return &Config{
		PitchCV:   4.333, // roughly E4 (659 Hz)
		TextIndex: 0,
		Texts: []string{
			"HELLO WORLD",
			"TEMPUS FUGIT",
			"SOS",
			"HELP",
			"EVE",
			"OMNE VIVUM EX VIVO",
			"THAT'S ONE SMALL STEP FOR A MAN, ONE GIANT LEAP FOR MANKIND.",
			"IM ANFANG WAR DAS WORT!",
			"IM ANFANG WAR DER SINN.",
			"IM ANFANG WAR DIE KRAFT!",
			"IM ANFANG WAR DIE THAT!",
		},
		WPM: 20,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "morsepi"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config from an explicit path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills fields older config files may lack
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.Texts) == 0 {
		c.Texts = def.Texts
	}
	if c.PitchCV == 0 {
		c.PitchCV = def.PitchCV
	}
	if c.WPM <= 0 {
		c.WPM = def.WPM
	}
	if c.TextIndex < 0 || c.TextIndex >= len(c.Texts) {
		c.TextIndex = 0
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
