package engine

// Gate output levels in volts
const (
	GateHighVolts = 5.0
	GateLowVolts  = 0.0
)

// Levels is the voltage on each of the six output channels. All
// channels are level-queryable at any time; the three boundary
// channels are high for a single tick.
type Levels struct {
	Gate           float64
	EndOfCharacter float64
	EndOfWord      float64
	EndOfSequence  float64
	Pitch          float64
	Running        float64
}

// Projector maps sequencer frames to channel voltages. The pitch
// channel carries the committed CV while the gate is high and IdlePitch
// otherwise.
type Projector struct {
	High      float64
	IdlePitch float64
}

// NewProjector returns a projector with Eurorack-ish 5 V gates and a
// 0 V idle pitch level.
func NewProjector() Projector {
	return Projector{High: GateHighVolts, IdlePitch: GateLowVolts}
}

// Project computes all six channel levels for one tick
func (p Projector) Project(f Frame, pitchCV float64, running bool) Levels {
	l := Levels{Pitch: p.IdlePitch}
	if f.Gate {
		l.Gate = p.High
		l.Pitch = pitchCV
	}
	if f.EndOfCharacter {
		l.EndOfCharacter = p.High
	}
	if f.EndOfWord {
		l.EndOfWord = p.High
	}
	if f.EndOfSequence {
		l.EndOfSequence = p.High
	}
	if running {
		l.Running = p.High
	}
	return l
}
