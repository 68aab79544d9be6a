package engine

// Pitch CV range. 4.333 V is roughly E4 (659 Hz) at 1 V/oct, a common
// Morse sidetone pitch.
const (
	MinPitchCV     = 3.25
	MaxPitchCV     = 5.0
	DefaultPitchCV = 4.333
)

// pitchSteps is the number of semitone steps across the CV range
const pitchSteps = int((MaxPitchCV - MinPitchCV) * 12)

// AnalogDeadband is the minimum normalized change an analog text
// selection must exceed to be applied; smaller moves are jitter.
const AnalogDeadband = 0.001

// PitchForKnob maps a normalized knob value to a semitone-quantized
// voltage in [MinPitchCV, MaxPitchCV].
func PitchForKnob(value float64) float64 {
	step := int(value * float64(pitchSteps+1))
	if step > pitchSteps {
		step = pitchSteps
	}
	if step < 0 {
		step = 0
	}
	return MinPitchCV + float64(step)/12
}

// TextIndexForKnob maps a normalized knob value to a library index,
// floor-quantized and clamped to [0, count-1].
func TextIndexForKnob(value float64, count int) int {
	if count <= 0 {
		return 0
	}
	idx := int(value * float64(count))
	if idx >= count {
		idx = count - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// AnalogSelector filters analog text-selection samples through a
// deadband so input jitter cannot thrash the committed text. The first
// sample only establishes the baseline; it is never applied, so a saved
// selection survives startup noise.
type AnalogSelector struct {
	last   float64
	primed bool
}

// Accept reports whether the sample moved far enough from the last
// accepted one to be applied, and records it if so.
func (a *AnalogSelector) Accept(value float64) bool {
	if !a.primed {
		a.last = value
		a.primed = true
		return false
	}
	diff := value - a.last
	if diff < 0 {
		diff = -diff
	}
	if diff < AnalogDeadband {
		return false
	}
	a.last = value
	return true
}
