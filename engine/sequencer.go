package engine

import (
	"morsepi/morse"
)

// Frame is the sequencing result of one clock pulse: the gate level for
// the DIT that is starting now, plus the one-tick boundary pulses.
type Frame struct {
	Gate           bool
	EndOfCharacter bool
	EndOfWord      bool
	EndOfSequence  bool
	CharIndex      int // rune index of the character being sent
}

// Sequencer walks a compiled sequence one DIT per clock pulse, looping
// back to the first event when the end-of-sequence silence has elapsed.
type Sequencer struct {
	seq *morse.Sequence
	idx int // current event
	pos int // ticks elapsed within the current event; -1 before the first tick
}

// NewSequencer creates a sequencer positioned before the first tick
func NewSequencer(seq *morse.Sequence) *Sequencer {
	s := &Sequencer{}
	s.Reset(seq)
	return s
}

// Reset replaces the sequence and rewinds the cursor to the start
func (s *Sequencer) Reset(seq *morse.Sequence) {
	s.seq = seq
	s.Rewind()
}

// Rewind moves the cursor back before the first event
func (s *Sequencer) Rewind() {
	s.idx = 0
	s.pos = -1
}

// Sequence returns the compiled sequence being played
func (s *Sequencer) Sequence() *morse.Sequence {
	return s.seq
}

// Cursor returns the current event index and the tick position within it
func (s *Sequencer) Cursor() (event, tick int) {
	return s.idx, s.pos
}

// Tick advances the cursor by one DIT and returns the frame for the
// span starting at this tick. Boundary channels pulse only on the tick
// their silence event begins.
func (s *Sequencer) Tick() Frame {
	s.pos++
	if s.pos >= s.seq.Events[s.idx].Duration {
		s.idx = (s.idx + 1) % len(s.seq.Events)
		s.pos = 0
	}

	e := s.seq.Events[s.idx]
	begins := s.pos == 0
	return Frame{
		Gate:           e.Kind == morse.On,
		EndOfCharacter: begins && e.Boundary == morse.EndOfCharacter,
		EndOfWord:      begins && e.Boundary == morse.EndOfWord,
		EndOfSequence:  begins && e.Boundary == morse.EndOfSequence,
		CharIndex:      s.seq.Chars[s.idx],
	}
}
