package engine

import (
	"context"
	"sync"
	"time"

	"morsepi/debug"
	"morsepi/morse"
)

type cmdKind int

const (
	cmdClock cmdKind = iota
	cmdButton
	cmdKnob
	cmdAnalog
)

type command struct {
	kind   cmdKind
	button Button
	press  PressKind
	knob   int
	value  float64
}

// Engine owns all mutable sequencing state. Every input source feeds a
// single command channel consumed by Run, so no mutation can race
// another; the UI reads through immutable snapshots.
type Engine struct {
	state  State
	modes  *ModeController
	seq    *Sequencer
	proj   Projector
	analog AnalogSelector

	classifier *ButtonClassifier
	now        func() time.Time

	// Pending edit, valid only while in an adjustment mode
	pendingCV   float64
	pendingText int

	frame   Frame
	levels  Levels
	ticks   uint64
	lastErr string

	cmds chan command

	// UpdateChan signals the TUI that a snapshot changed (capacity 1,
	// best effort)
	UpdateChan chan struct{}

	// Frames carries projected channel levels to output sinks
	Frames chan Levels

	mu   sync.RWMutex
	view View
}

// New creates an engine in Paused mode playing from the given state
func New(state State, proj Projector) *Engine {
	e := &Engine{
		state:      state,
		modes:      NewModeController(),
		proj:       proj,
		classifier: NewButtonClassifier(),
		now:        time.Now,
		cmds:       make(chan command, 64),
		UpdateChan: make(chan struct{}, 1),
		Frames:     make(chan Levels, 64),
	}

	seq, err := morse.Compile(e.state.CurrentText())
	if err != nil {
		debug.Log("engine", "initial text rejected: %v", err)
		e.lastErr = err.Error()
		seq, _ = morse.Compile("")
	}
	e.seq = NewSequencer(seq)
	e.levels = e.proj.Project(Frame{}, e.state.PitchCV, false)
	e.publish()
	return e
}

// Run consumes commands until the context is canceled. All state
// mutation happens here.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmds:
			e.apply(cmd)
			e.publish()
		}
	}
}

// ClockPulse feeds one external DIT pulse. Pulses arriving while not
// running, or faster than the loop can drain them, are dropped.
func (e *Engine) ClockPulse() {
	e.send(command{kind: cmdClock})
}

// Button feeds a pre-classified button press
func (e *Engine) Button(b Button, kind PressKind) {
	e.send(command{kind: cmdButton, button: b, press: kind})
}

// ButtonDown records a press start for duration classification.
// Down/Up must be called from a single input goroutine.
func (e *Engine) ButtonDown(b Button) {
	e.classifier.Down(b, e.now())
}

// ButtonUp completes a press, classifies it against the 1 s threshold
// and feeds the result
func (e *Engine) ButtonUp(b Button) {
	kind, ok := e.classifier.Up(b, e.now())
	if !ok {
		return
	}
	e.Button(b, kind)
}

// Knob feeds a normalized knob sample (id 1 or 2, value in [0,1])
func (e *Engine) Knob(id int, value float64) {
	e.send(command{kind: cmdKnob, knob: id, value: clamp01(value)})
}

// Analog feeds a normalized analog text-selection sample
func (e *Engine) Analog(value float64) {
	e.send(command{kind: cmdAnalog, value: clamp01(value)})
}

func (e *Engine) send(cmd command) {
	select {
	case e.cmds <- cmd:
	default:
		debug.Log("engine", "command dropped: kind=%d", cmd.kind)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (e *Engine) apply(cmd command) {
	switch cmd.kind {
	case cmdClock:
		e.applyClock()
	case cmdButton:
		e.applyButton(cmd.button, cmd.press)
	case cmdKnob:
		e.applyKnob(cmd.knob, cmd.value)
	case cmdAnalog:
		e.applyAnalog(cmd.value)
	}
}

func (e *Engine) applyClock() {
	if e.modes.Mode() != Running {
		// Dropped, not buffered: paused and adjustment modes ignore
		// the clock entirely
		return
	}
	e.ticks++
	e.frame = e.seq.Tick()
	e.levels = e.proj.Project(e.frame, e.state.PitchCV, true)
}

func (e *Engine) applyButton(b Button, kind PressKind) {
	action := e.modes.Press(b, kind)
	switch action {
	case ActionStart:
		if !e.restart() {
			e.modes.abort()
		}

	case ActionFreeze:
		e.frame = Frame{}
		e.ticks = 0

	case ActionSnapshotCV:
		e.pendingCV = e.state.PitchCV

	case ActionSnapshotText:
		e.pendingText = e.state.TextIndex

	case ActionCommitCV:
		e.state.PitchCV = e.pendingCV
		debug.Log("engine", "pitch cv committed: %.3f", e.state.PitchCV)

	case ActionCommitText:
		if e.pendingText != e.state.TextIndex {
			e.setText(e.pendingText)
		}

	case ActionCancelCV, ActionCancelText, ActionNone:
		// Committed state untouched
	}
	e.reproject()
}

// restart recompiles the selected text and rewinds to its first event.
// A text that fails to compile rejects the start and leaves everything
// as it was.
func (e *Engine) restart() bool {
	seq, err := morse.Compile(e.state.CurrentText())
	if err != nil {
		debug.Log("engine", "start rejected: %v", err)
		e.lastErr = err.Error()
		return false
	}
	e.lastErr = ""
	e.seq.Reset(seq)
	e.frame = Frame{}
	e.ticks = 0
	return true
}

// setText commits a new text selection, replacing the sequence
// wholesale and rewinding the cursor. The committed index is untouched
// if the text does not compile.
func (e *Engine) setText(idx int) bool {
	if idx < 0 || idx >= len(e.state.Texts) {
		return false
	}
	seq, err := morse.Compile(e.state.Texts[idx])
	if err != nil {
		debug.Log("engine", "text %d rejected: %v", idx, err)
		e.lastErr = err.Error()
		return false
	}
	e.lastErr = ""
	e.state.TextIndex = idx
	e.seq.Reset(seq)
	e.frame = Frame{}
	e.ticks = 0
	return true
}

func (e *Engine) applyKnob(id int, value float64) {
	if id != 1 {
		// Knob 2 is reserved
		return
	}
	switch e.modes.Mode() {
	case AdjustCV:
		e.pendingCV = PitchForKnob(value)
	case AdjustText:
		e.pendingText = TextIndexForKnob(value, len(e.state.Texts))
	}
}

func (e *Engine) applyAnalog(value float64) {
	switch e.modes.Mode() {
	case AdjustCV, AdjustText:
		return
	}
	if !e.analog.Accept(value) {
		return
	}
	idx := TextIndexForKnob(value, len(e.state.Texts))
	if idx == e.state.TextIndex {
		return
	}
	if e.setText(idx) {
		debug.Log("engine", "analog selected text %d", idx)
		e.reproject()
	}
}

// reproject recomputes levels from the held frame after a mode or CV
// change; the sequence cursor is never touched here
func (e *Engine) reproject() {
	mode := e.modes.Mode()
	e.levels = e.proj.Project(e.frame, e.state.PitchCV, mode == Running)
}

// publish refreshes the UI snapshot and notifies listeners
func (e *Engine) publish() {
	idx, _ := e.seq.Cursor()
	v := View{
		Mode:          e.modes.Mode(),
		PreviousMain:  e.modes.PreviousMain(),
		Text:          e.state.CurrentText(),
		TextIndex:     e.state.TextIndex,
		TextCount:     len(e.state.Texts),
		PitchCV:       e.state.PitchCV,
		CharIndex:     e.frame.CharIndex,
		EventIndex:    idx,
		TotalDuration: e.seq.Sequence().TotalDuration(),
		Ticks:         e.ticks,
		Levels:        e.levels,
		LastErr:       e.lastErr,
	}
	switch v.Mode {
	case AdjustCV:
		v.PendingCV = e.pendingCV
	case AdjustText:
		v.PendingTextIndex = e.pendingText
		if e.pendingText >= 0 && e.pendingText < len(e.state.Texts) {
			v.PendingText = e.state.Texts[e.pendingText]
		}
	}

	e.mu.Lock()
	e.view = v
	e.mu.Unlock()

	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
	select {
	case e.Frames <- e.levels:
	default:
	}
}

// Snapshot returns the latest UI view
func (e *Engine) Snapshot() View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.view
}

// CommittedState returns a copy of the committed state, for persistence
func (e *Engine) CommittedState() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s := State{
		PitchCV:   e.view.PitchCV,
		TextIndex: e.view.TextIndex,
		Texts:     make([]string, e.view.TextCount),
	}
	copy(s.Texts, e.state.Texts)
	return s
}
