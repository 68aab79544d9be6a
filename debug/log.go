package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	file    *os.File
	logger  zerolog.Logger
	enabled bool
)

// DefaultPath returns the debug log location
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "morsepi", "debug.log")
}

// Enable starts debug logging to the given path ("" for the default)
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}).With().Timestamp().Logger()
	enabled = true

	logger.Info().Str("cat", "debug").Msg("debug logging started")
	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// Log writes a categorized message to the debug log. A no-op unless
// Enable has been called.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().Str("cat", category).Msg(fmt.Sprintf(format, args...))
}
