package engine

import (
	"testing"

	"morsepi/morse"
)

func mustCompile(t *testing.T, text string) *morse.Sequence {
	t.Helper()
	seq, err := morse.Compile(text)
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func TestSequencerSingleDit(t *testing.T) {
	// "E" compiles to ON(1) + end-of-sequence silence(7)
	s := NewSequencer(mustCompile(t, "E"))

	f := s.Tick()
	if !f.Gate {
		t.Error("tick 1: gate low, want high")
	}
	if f.EndOfSequence {
		t.Error("tick 1: unexpected end-of-sequence pulse")
	}

	f = s.Tick()
	if f.Gate {
		t.Error("tick 2: gate high, want low")
	}
	if !f.EndOfSequence {
		t.Error("tick 2: end-of-sequence pulse missing at silence start")
	}

	// The pulse is an edge, not a level spanning the silence
	for i := 3; i <= 8; i++ {
		f = s.Tick()
		if f.EndOfSequence {
			t.Errorf("tick %d: end-of-sequence still high", i)
		}
		if f.Gate {
			t.Errorf("tick %d: gate high during silence", i)
		}
	}

	// Wrap: next tick starts the cycle over
	f = s.Tick()
	if !f.Gate {
		t.Error("tick 9: gate low, want high after wrap")
	}
}

func TestSequencerCycleLength(t *testing.T) {
	for _, text := range []string{"SOS", "A B", "HELLO WORLD", "E"} {
		seq := mustCompile(t, text)
		s := NewSequencer(seq)
		total := seq.TotalDuration()

		// Ticks between consecutive end-of-sequence pulses must equal
		// the compiled total duration.
		var pulses []int
		for i := 1; i <= 3*total; i++ {
			if s.Tick().EndOfSequence {
				pulses = append(pulses, i)
			}
		}
		if len(pulses) != 3 {
			t.Fatalf("%q: %d end-of-sequence pulses in %d ticks, want 3", text, len(pulses), 3*total)
		}
		for i := 1; i < len(pulses); i++ {
			if gap := pulses[i] - pulses[i-1]; gap != total {
				t.Errorf("%q: cycle length %d, want %d", text, gap, total)
			}
		}
	}
}

func TestSequencerSOSBoundaries(t *testing.T) {
	seq := mustCompile(t, "SOS")
	s := NewSequencer(seq)
	total := seq.TotalDuration()

	eoc, eow, eom := 0, 0, 0
	for i := 0; i < total; i++ {
		f := s.Tick()
		if f.EndOfCharacter {
			eoc++
		}
		if f.EndOfWord {
			eow++
		}
		if f.EndOfSequence {
			eom++
		}
	}
	if eoc != 2 {
		t.Errorf("end-of-character pulses = %d, want 2 (after S and O)", eoc)
	}
	if eow != 0 {
		t.Errorf("end-of-word pulses = %d, want 0", eow)
	}
	if eom != 1 {
		t.Errorf("end-of-sequence pulses = %d, want 1", eom)
	}
}

func TestSequencerGatePattern(t *testing.T) {
	// S = dit dit dit: on off on off on
	s := NewSequencer(mustCompile(t, "S"))
	want := []bool{true, false, true, false, true}
	for i, w := range want {
		if got := s.Tick().Gate; got != w {
			t.Errorf("tick %d: gate = %v, want %v", i+1, got, w)
		}
	}
}

func TestSequencerWordGapPulse(t *testing.T) {
	seq := mustCompile(t, "A B")
	s := NewSequencer(seq)
	total := seq.TotalDuration()

	eow := 0
	for i := 0; i < total; i++ {
		if s.Tick().EndOfWord {
			eow++
		}
	}
	if eow != 1 {
		t.Errorf("end-of-word pulses = %d, want 1", eow)
	}
}

func TestSequencerRewind(t *testing.T) {
	s := NewSequencer(mustCompile(t, "SOS"))
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	s.Rewind()
	if !s.Tick().Gate {
		t.Error("first tick after rewind: gate low, want high")
	}
	if idx, pos := s.Cursor(); idx != 0 || pos != 0 {
		t.Errorf("cursor after rewind+tick = (%d,%d), want (0,0)", idx, pos)
	}
}
