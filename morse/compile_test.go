package morse

import (
	"errors"
	"reflect"
	"testing"
)

func countBoundaries(events []Event) map[Boundary]int {
	counts := make(map[Boundary]int)
	for _, e := range events {
		if e.Boundary != BoundaryNone {
			counts[e.Boundary]++
		}
	}
	return counts
}

func TestCompileSOS(t *testing.T) {
	seq, err := Compile("SOS")
	if err != nil {
		t.Fatal(err)
	}

	// S = dit dit dit (1+1+1 on, two 1-dit gaps), O = dah dah dah
	// (3+3+3 on, two 1-dit gaps), 3-dit gaps after S and O, 7-dit
	// end-of-sequence gap: 5 + 3 + 11 + 3 + 5 + 7
	if got := seq.TotalDuration(); got != 34 {
		t.Errorf("total duration = %d, want 34", got)
	}

	counts := countBoundaries(seq.Events)
	if counts[EndOfCharacter] != 2 {
		t.Errorf("end-of-character events = %d, want 2", counts[EndOfCharacter])
	}
	if counts[EndOfWord] != 0 {
		t.Errorf("end-of-word events = %d, want 0", counts[EndOfWord])
	}
	if counts[EndOfSequence] != 1 {
		t.Errorf("end-of-sequence events = %d, want 1", counts[EndOfSequence])
	}

	last := seq.Events[len(seq.Events)-1]
	if last.Boundary != EndOfSequence || last.Kind != Silence {
		t.Errorf("last event = %+v, want end-of-sequence silence", last)
	}
}

func TestCompileWordGap(t *testing.T) {
	seq, err := Compile("A B")
	if err != nil {
		t.Fatal(err)
	}

	counts := countBoundaries(seq.Events)
	if counts[EndOfWord] != 1 {
		t.Fatalf("end-of-word events = %d, want 1", counts[EndOfWord])
	}
	if counts[EndOfCharacter] != 0 {
		t.Errorf("end-of-character events = %d, want 0 (word gap supersedes)", counts[EndOfCharacter])
	}
	for _, e := range seq.Events {
		if e.Boundary == EndOfWord && e.Duration != EOWGapLen {
			t.Errorf("word gap duration = %d, want %d", e.Duration, EOWGapLen)
		}
	}

	// A (1+1+3) + word gap 7 + B (3+1+1+1+1+1+1) + end gap 7
	if got := seq.TotalDuration(); got != 28 {
		t.Errorf("total duration = %d, want 28", got)
	}
}

func TestCompilePerCharacterTiming(t *testing.T) {
	// Each glyph's ON spans must reproduce its dit/dah pattern with
	// 1-dit silences between symbols.
	for _, text := range []string{"E", "T", "Q", "HELLO", "73"} {
		seq, err := Compile(text)
		if err != nil {
			t.Fatal(err)
		}
		var want []int
		for _, c := range text {
			g, err := GlyphFor(c)
			if err != nil {
				t.Fatal(err)
			}
			for _, sym := range g {
				want = append(want, sym.Duration())
			}
		}
		var got []int
		for _, e := range seq.Events {
			if e.Kind == On {
				got = append(got, e.Duration)
			}
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%q: ON durations = %v, want %v", text, got, want)
		}
	}
}

func TestCompileIdempotent(t *testing.T) {
	a, err := Compile("HELLO WORLD")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile("HELLO WORLD")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("compiling the same text twice produced different sequences")
	}
}

func TestCompileEmpty(t *testing.T) {
	for _, text := range []string{"", "   "} {
		seq, err := Compile(text)
		if err != nil {
			t.Fatal(err)
		}
		if len(seq.Events) != 1 {
			t.Fatalf("%q: %d events, want 1", text, len(seq.Events))
		}
		e := seq.Events[0]
		if e.Kind != Silence || e.Boundary != EndOfSequence || e.Duration != 1 {
			t.Errorf("%q: event = %+v, want 1-dit end-of-sequence silence", text, e)
		}
	}
}

func TestCompileUnknownCharacter(t *testing.T) {
	_, err := Compile("SOS#")
	if err == nil {
		t.Fatal("expected compile error for unsupported character")
	}
	var unk *UnknownCharacterError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownCharacterError, got %T", err)
	}
}

func TestCompileSpaceHandling(t *testing.T) {
	// Leading, trailing and repeated spaces never produce extra gaps.
	seq, err := Compile("  A   B  ")
	if err != nil {
		t.Fatal(err)
	}
	counts := countBoundaries(seq.Events)
	if counts[EndOfWord] != 1 {
		t.Errorf("end-of-word events = %d, want 1", counts[EndOfWord])
	}
	ab, err := Compile("A B")
	if err != nil {
		t.Fatal(err)
	}
	if seq.TotalDuration() != ab.TotalDuration() {
		t.Errorf("padded text duration = %d, want %d", seq.TotalDuration(), ab.TotalDuration())
	}
}
