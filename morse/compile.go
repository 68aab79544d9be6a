package morse

// EventKind distinguishes signal-on spans from silence spans
type EventKind int

const (
	On EventKind = iota
	Silence
)

// Boundary annotates a silence event with its semantic position
type Boundary int

const (
	BoundaryNone Boundary = iota
	EndOfCharacter
	EndOfWord
	EndOfSequence
)

func (b Boundary) String() string {
	switch b {
	case EndOfCharacter:
		return "EOC"
	case EndOfWord:
		return "EOW"
	case EndOfSequence:
		return "EOM"
	}
	return ""
}

// Event is one timed span of a compiled sequence
type Event struct {
	Kind     EventKind
	Duration int // in DIT units, always > 0
	Boundary Boundary
}

// Char pairs a glyph with its position in the source text, so a UI can
// highlight the character currently being sent.
type Char struct {
	Index int // rune index into the source text
	Glyph Glyph
}

// Sequence is a compiled text: the flat event list plus per-event
// source positions for display.
type Sequence struct {
	Text   string
	Events []Event
	// Chars[i] is the source character the i-th event belongs to;
	// gap events between words and the final gap map to the last
	// character sent.
	Chars []int
}

// TotalDuration returns the full cycle length in DIT units
func (s *Sequence) TotalDuration() int {
	total := 0
	for _, e := range s.Events {
		total += e.Duration
	}
	return total
}

// Compile turns a text into its flat timed event list. Each glyph
// becomes ON spans separated by 1-DIT silences; character boundaries
// get a 3-DIT silence, word boundaries (spaces) a 7-DIT silence, and
// the end of the text a 7-DIT silence tagged EndOfSequence. An empty
// text compiles to a single 1-DIT EndOfSequence silence so the event
// list is never empty.
func Compile(text string) (*Sequence, error) {
	seq := &Sequence{Text: text}

	runes := []rune(text)
	lastSent := 0
	pendingGap := BoundaryNone // boundary owed before the next glyph
	haveGlyph := false

	emit := func(e Event, charIdx int) {
		seq.Events = append(seq.Events, e)
		seq.Chars = append(seq.Chars, charIdx)
	}

	for i, c := range runes {
		if c == ' ' {
			// Word gap supersedes the character gap at this boundary
			if haveGlyph {
				pendingGap = EndOfWord
			}
			continue
		}
		g, err := GlyphFor(c)
		if err != nil {
			return nil, err
		}
		if haveGlyph {
			switch pendingGap {
			case EndOfWord:
				emit(Event{Kind: Silence, Duration: EOWGapLen, Boundary: EndOfWord}, lastSent)
			default:
				emit(Event{Kind: Silence, Duration: EOCGapLen, Boundary: EndOfCharacter}, lastSent)
			}
		}
		for j, sym := range g {
			if j > 0 {
				emit(Event{Kind: Silence, Duration: SymGapLen}, i)
			}
			emit(Event{Kind: On, Duration: sym.Duration()}, i)
		}
		lastSent = i
		pendingGap = BoundaryNone
		haveGlyph = true
	}

	if !haveGlyph {
		emit(Event{Kind: Silence, Duration: DitLen, Boundary: EndOfSequence}, 0)
		return seq, nil
	}

	emit(Event{Kind: Silence, Duration: EOMGapLen, Boundary: EndOfSequence}, lastSent)
	return seq, nil
}
