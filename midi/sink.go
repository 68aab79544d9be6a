package midi

import (
	"context"
	"math"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	// _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"morsepi/debug"
	"morsepi/engine"
)

// Trigger notes for the one-tick boundary channels
const (
	EndOfCharacterNote uint8 = 36
	EndOfWordNote      uint8 = 38
	EndOfSequenceNote  uint8 = 40
	RunningNote        uint8 = 42
)

const triggerVelocity = 100

// NoteForVoltage converts a pitch CV to a MIDI note at 1 V/oct with
// 0 V at C0 (note 12). 4.333 V lands on E4.
func NoteForVoltage(v float64) uint8 {
	n := 12 + int(math.Round(v*12))
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return uint8(n)
}

// FindOutPort returns the first output port whose name contains the
// given substring (case-insensitive), or nil.
func FindOutPort(name string) drivers.Out {
	if name == "" {
		return nil
	}
	want := strings.ToLower(name)
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p
		}
	}
	return nil
}

// Sink projects output channel levels onto a MIDI port: the gate span
// becomes a held note at the committed pitch, boundary pulses become
// trigger notes, and the running indicator a sustained note.
type Sink struct {
	portName string
	channel  uint8

	send func(gomidi.Message) error

	gateNote  uint8
	gateOn    bool
	runningOn bool
	prev      engine.Levels
}

// NewSink creates a sink for the named output port
func NewSink(portName string, channel uint8) *Sink {
	if channel > 15 {
		channel = 0
	}
	return &Sink{portName: portName, channel: channel}
}

// connect lazily opens the output port, as the sequencer may start
// before the port exists
func (s *Sink) connect() bool {
	if s.send != nil {
		return true
	}
	port := FindOutPort(s.portName)
	if port == nil {
		return false
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		debug.Log("midi", "open %q: %v", s.portName, err)
		return false
	}
	s.send = send
	debug.Log("midi", "connected to %q", port.String())
	return true
}

// Run consumes frames until the context is canceled (blocking - run in
// goroutine)
func (s *Sink) Run(ctx context.Context, frames <-chan engine.Levels) {
	for {
		select {
		case <-ctx.Done():
			s.silence()
			return
		case levels := <-frames:
			s.apply(levels)
		}
	}
}

func (s *Sink) apply(l engine.Levels) {
	if !s.connect() {
		return
	}

	// Gate edge: note on with the pitch captured at the rising edge
	gate := l.Gate > 0
	if gate && !s.gateOn {
		s.gateNote = NoteForVoltage(l.Pitch)
		s.send(gomidi.NoteOn(s.channel, s.gateNote, triggerVelocity))
	} else if !gate && s.gateOn {
		s.send(gomidi.NoteOff(s.channel, s.gateNote))
	}
	s.gateOn = gate

	// Boundary pulses are edges already; send a trigger per rising edge
	for _, tr := range []struct {
		cur, prev float64
		note      uint8
	}{
		{l.EndOfCharacter, s.prev.EndOfCharacter, EndOfCharacterNote},
		{l.EndOfWord, s.prev.EndOfWord, EndOfWordNote},
		{l.EndOfSequence, s.prev.EndOfSequence, EndOfSequenceNote},
	} {
		if tr.cur > 0 && tr.prev == 0 {
			s.send(gomidi.NoteOn(s.channel, tr.note, triggerVelocity))
			s.send(gomidi.NoteOff(s.channel, tr.note))
		}
	}

	running := l.Running > 0
	if running && !s.runningOn {
		s.send(gomidi.NoteOn(s.channel, RunningNote, triggerVelocity))
	} else if !running && s.runningOn {
		s.send(gomidi.NoteOff(s.channel, RunningNote))
	}
	s.runningOn = running

	s.prev = l
}

// silence releases any held notes
func (s *Sink) silence() {
	if s.send == nil {
		return
	}
	if s.gateOn {
		s.send(gomidi.NoteOff(s.channel, s.gateNote))
		s.gateOn = false
	}
	if s.runningOn {
		s.send(gomidi.NoteOff(s.channel, RunningNote))
		s.runningOn = false
	}
}
