package engine

// State is the committed configuration the sequencer plays from. It is
// owned exclusively by the engine's dispatch loop; adjustment modes
// stage changes in a pending edit and only touch these fields on
// commit.
type State struct {
	PitchCV   float64  `json:"pitchCV"`
	TextIndex int      `json:"textIndex"`
	Texts     []string `json:"texts"`
}

// CurrentText returns the selected text, clamping a stale index
func (s *State) CurrentText() string {
	if len(s.Texts) == 0 {
		return ""
	}
	idx := s.TextIndex
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Texts) {
		idx = len(s.Texts) - 1
	}
	return s.Texts[idx]
}

// View is a read-only snapshot of the engine for the UI
type View struct {
	Mode         Mode
	PreviousMain Mode

	Text      string
	TextIndex int
	TextCount int
	PitchCV   float64

	// Pending edit values, meaningful only in the adjustment modes
	PendingCV        float64
	PendingTextIndex int
	PendingText      string

	// Playback position
	CharIndex     int // rune index of the character being sent
	EventIndex    int
	TotalDuration int
	Ticks         uint64 // pulses consumed since the last start

	Levels  Levels
	LastErr string
}
