package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"morsepi/clock"
	"morsepi/config"
	"morsepi/debug"
	"morsepi/engine"
	"morsepi/midi"
	"morsepi/theme"
	"morsepi/tui"
)

func main() {
	if os.Getenv("MORSEPI_DEBUG") != "" {
		if err := debug.Enable(""); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	th := theme.New(theme.Amber())

	eng := engine.New(engine.State{
		PitchCV:   cfg.PitchCV,
		TextIndex: cfg.TextIndex,
		Texts:     cfg.Texts,
	}, engine.NewProjector())

	clk := clock.NewGenerator(cfg.WPM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go eng.Run(ctx)
	go clk.Run(ctx, eng.ClockPulse)

	// Optional hardware projection of the six channels
	if cfg.MIDI.PortName != "" {
		sink := midi.NewSink(cfg.MIDI.PortName, cfg.MIDI.Channel)
		go sink.Run(ctx, eng.Frames)
	}

	m := tui.NewModel(eng, clk, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Persist committed state for the next run
	state := eng.CommittedState()
	cfg.PitchCV = state.PitchCV
	cfg.TextIndex = state.TextIndex
	cfg.Texts = state.Texts
	cfg.WPM = clk.WPM()
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "save config: %v\n", err)
	}
}
