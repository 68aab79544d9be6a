package engine

import "time"

// Mode is the UI state, orthogonal to the sequence cursor
type Mode int

const (
	Paused Mode = iota
	Running
	AdjustCV
	AdjustText
)

func (m Mode) String() string {
	switch m {
	case Paused:
		return "PAUSED"
	case Running:
		return "RUNNING"
	case AdjustCV:
		return "ADJUST CV"
	case AdjustText:
		return "ADJUST TEXT"
	}
	return "?"
}

// Button identifies one of the two hardware buttons
type Button int

const (
	Button1 Button = 1
	Button2 Button = 2
)

// PressKind classifies how long a button was held
type PressKind int

const (
	ShortPress PressKind = iota
	LongPress
)

// LongPressThreshold is the hold time that turns a press into a long press
const LongPressThreshold = time.Second

// ButtonClassifier turns press/release timestamp pairs into press kinds.
// Timestamps must come from a monotonic clock (time.Now qualifies).
type ButtonClassifier struct {
	downAt map[Button]time.Time
}

// NewButtonClassifier creates an empty classifier
func NewButtonClassifier() *ButtonClassifier {
	return &ButtonClassifier{downAt: make(map[Button]time.Time)}
}

// Down records a button press
func (c *ButtonClassifier) Down(b Button, at time.Time) {
	c.downAt[b] = at
}

// Up completes a press and classifies it. Returns false for a release
// without a matching press.
func (c *ButtonClassifier) Up(b Button, at time.Time) (PressKind, bool) {
	down, ok := c.downAt[b]
	if !ok {
		return ShortPress, false
	}
	delete(c.downAt, b)
	if at.Sub(down) >= LongPressThreshold {
		return LongPress, true
	}
	return ShortPress, true
}

// Action is the side effect a mode transition asks the engine to perform
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionFreeze
	ActionSnapshotCV
	ActionSnapshotText
	ActionCommitCV
	ActionCancelCV
	ActionCommitText
	ActionCancelText
)

// ModeController is the UI mode state machine. The adjustment modes are
// always entered from, and return to, exactly one of Paused or Running.
type ModeController struct {
	mode         Mode
	previousMain Mode
}

// NewModeController starts in Paused
func NewModeController() *ModeController {
	return &ModeController{mode: Paused, previousMain: Paused}
}

// Mode returns the current UI mode
func (c *ModeController) Mode() Mode {
	return c.mode
}

// PreviousMain returns the main mode an adjustment mode will return to
func (c *ModeController) PreviousMain() Mode {
	return c.previousMain
}

// Press applies one classified button press and returns the action the
// engine must perform. Undefined transitions return ActionNone.
func (c *ModeController) Press(b Button, kind PressKind) Action {
	switch c.mode {
	case Paused, Running:
		switch {
		case b == Button1 && kind == ShortPress:
			if c.mode == Paused {
				c.mode = Running
				return ActionStart
			}
			c.mode = Paused
			return ActionFreeze
		case b == Button1 && kind == LongPress:
			c.previousMain = c.mode
			c.mode = AdjustCV
			return ActionSnapshotCV
		case b == Button2 && kind == ShortPress:
			c.previousMain = c.mode
			c.mode = AdjustText
			return ActionSnapshotText
		}

	case AdjustCV:
		if kind != ShortPress {
			return ActionNone
		}
		c.mode = c.previousMain
		if b == Button1 {
			return ActionCommitCV
		}
		return ActionCancelCV

	case AdjustText:
		if kind != ShortPress {
			return ActionNone
		}
		c.mode = c.previousMain
		if b == Button1 {
			return ActionCommitText
		}
		return ActionCancelText
	}
	return ActionNone
}

// abort drops back to Paused after a failed start. Only meaningful
// right after Press returned ActionStart.
func (c *ModeController) abort() {
	c.mode = Paused
}
