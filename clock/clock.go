package clock

import (
	"context"
	"sync"
	"time"

	"morsepi/debug"
)

// WPM bounds for the internal clock. At the PARIS convention one DIT
// lasts 1200 ms / WPM.
const (
	MinWPM     = 5
	MaxWPM     = 60
	DefaultWPM = 20
)

// DitDuration returns the DIT length for a words-per-minute rate
func DitDuration(wpm int) time.Duration {
	if wpm < MinWPM {
		wpm = MinWPM
	}
	if wpm > MaxWPM {
		wpm = MaxWPM
	}
	return 1200 * time.Millisecond / time.Duration(wpm)
}

// Generator is an internal stand-in for the external DIT clock: a
// ticker that calls the pulse function once per DIT. The consumer only
// ever sees pulses, so an external clock source can replace it without
// touching anything downstream.
type Generator struct {
	mu     sync.Mutex
	wpm    int
	retune chan struct{}
}

// NewGenerator creates a generator at the given words-per-minute rate
func NewGenerator(wpm int) *Generator {
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	return &Generator{
		wpm:    wpm,
		retune: make(chan struct{}, 1),
	}
}

// WPM returns the current rate
func (g *Generator) WPM() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.wpm
}

// SetWPM changes the rate; the running loop picks it up on its next tick
func (g *Generator) SetWPM(wpm int) {
	if wpm < MinWPM {
		wpm = MinWPM
	}
	if wpm > MaxWPM {
		wpm = MaxWPM
	}
	g.mu.Lock()
	g.wpm = wpm
	g.mu.Unlock()
	select {
	case g.retune <- struct{}{}:
	default:
	}
	debug.Log("clock", "wpm set to %d", wpm)
}

// Run emits pulses until the context is canceled (blocking - run in
// goroutine)
func (g *Generator) Run(ctx context.Context, pulse func()) {
	ticker := time.NewTicker(DitDuration(g.WPM()))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-g.retune:
			ticker.Reset(DitDuration(g.WPM()))
		case <-ticker.C:
			pulse()
		}
	}
}
