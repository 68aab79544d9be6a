package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"morsepi/clock"
	"morsepi/engine"
	"morsepi/morse"
	"morsepi/theme"
)

// Knob and analog step sizes per keypress
const (
	knobStep     = 0.02
	knobFineStep = 0.002
	analogStep   = 0.05
)

type Model struct {
	Engine *engine.Engine
	Clock  *clock.Generator
	Theme  *theme.Theme

	knob1    float64
	analog   float64
	quitting bool
}

type UpdateMsg struct{}

func NewModel(eng *engine.Engine, clk *clock.Generator, th *theme.Theme) Model {
	return Model{
		Engine: eng,
		Clock:  clk,
		Theme:  th,
		knob1:  0.5,
	}
}

// ListenForUpdates bridges the engine's update channel into tea messages
func ListenForUpdates(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		<-eng.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "enter":
			m.Engine.Button(engine.Button1, engine.ShortPress)

		case "v":
			m.Engine.Button(engine.Button1, engine.LongPress)

		case "t", "esc":
			m.Engine.Button(engine.Button2, engine.ShortPress)

		case "left":
			m.knob1 = clampUnit(m.knob1 - knobStep)
			m.Engine.Knob(1, m.knob1)

		case "right":
			m.knob1 = clampUnit(m.knob1 + knobStep)
			m.Engine.Knob(1, m.knob1)

		case "shift+left":
			m.knob1 = clampUnit(m.knob1 - knobFineStep)
			m.Engine.Knob(1, m.knob1)

		case "shift+right":
			m.knob1 = clampUnit(m.knob1 + knobFineStep)
			m.Engine.Knob(1, m.knob1)

		case "[":
			m.analog = clampUnit(m.analog - analogStep)
			m.Engine.Analog(m.analog)

		case "]":
			m.analog = clampUnit(m.analog + analogStep)
			m.Engine.Analog(m.analog)

		case "+", "=":
			m.Clock.SetWPM(m.Clock.WPM() + 1)

		case "-", "_":
			m.Clock.SetWPM(m.Clock.WPM() - 1)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)
	}

	return m, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.Engine.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active()).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	header := headerStyle.Render(fmt.Sprintf("morsepi  %-11s  %2dwpm  cv %1.3f  text %d/%d",
		v.Mode, m.Clock.WPM(), v.PitchCV, v.TextIndex+1, v.TextCount))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(m.textLine(v, activeStyle, dimStyle))
	out.WriteString("\n")
	out.WriteString(m.glyphLine(v, dimStyle))
	out.WriteString("\n\n")
	out.WriteString(m.lampLine(v, activeStyle, dimStyle))
	out.WriteString("\n\n")
	out.WriteString(m.modePanel(v, activeStyle, dimStyle))
	out.WriteString("\n")
	if v.LastErr != "" {
		out.WriteString(warnStyle.Render(v.LastErr))
		out.WriteString("\n")
	}
	out.WriteString(dimStyle.Render(m.helpLine(v.Mode)))

	return out.String()
}

// textLine renders the selected text with the character being sent
// highlighted while the gate is high
func (m Model) textLine(v engine.View, active, dim lipgloss.Style) string {
	runes := []rune(v.Text)
	if len(runes) == 0 {
		return dim.Render("(empty text)")
	}
	ci := v.CharIndex
	if ci < 0 || ci >= len(runes) {
		ci = 0
	}
	if v.Mode == engine.Paused {
		return dim.Render(v.Text)
	}

	cur := string(runes[ci])
	if v.Levels.Gate > 0 {
		cur = active.Render(cur)
	} else {
		cur = dim.Render(cur)
	}
	return dim.Render(string(runes[:ci])) + cur + dim.Render(string(runes[ci+1:]))
}

// glyphLine shows the dit/dah pattern of the character being sent
func (m Model) glyphLine(v engine.View, dim lipgloss.Style) string {
	runes := []rune(v.Text)
	if v.Mode == engine.Paused || v.CharIndex < 0 || v.CharIndex >= len(runes) {
		return ""
	}
	g, err := morse.GlyphFor(runes[v.CharIndex])
	if err != nil {
		return ""
	}
	var b strings.Builder
	for i, sym := range g {
		if i > 0 {
			b.WriteRune(' ')
		}
		if sym == morse.Dah {
			b.WriteRune(m.Theme.Symbols.Dah)
		} else {
			b.WriteRune(m.Theme.Symbols.Dit)
		}
	}
	return dim.Render(b.String())
}

// lampLine shows the six output channels
func (m Model) lampLine(v engine.View, active, dim lipgloss.Style) string {
	lamp := func(name string, level float64) string {
		if level > 0 {
			return active.Render(fmt.Sprintf("%s %c", name, m.Theme.Symbols.LampOn))
		}
		return dim.Render(fmt.Sprintf("%s %c", name, m.Theme.Symbols.LampOff))
	}
	pitch := fmt.Sprintf("cv %1.3f", v.Levels.Pitch)
	if v.Levels.Gate > 0 {
		pitch = active.Render(pitch)
	} else {
		pitch = dim.Render(pitch)
	}
	return strings.Join([]string{
		lamp("gate", v.Levels.Gate),
		lamp("eoc", v.Levels.EndOfCharacter),
		lamp("eow", v.Levels.EndOfWord),
		lamp("eom", v.Levels.EndOfSequence),
		pitch,
		lamp("run", v.Levels.Running),
	}, "  ")
}

// modePanel shows the pending edit in the adjustment modes
func (m Model) modePanel(v engine.View, active, dim lipgloss.Style) string {
	switch v.Mode {
	case engine.AdjustCV:
		return dim.Render(fmt.Sprintf("cur cv %1.3f", v.PitchCV)) + "\n" +
			active.Render(fmt.Sprintf("new cv %1.3f", v.PendingCV))
	case engine.AdjustText:
		return dim.Render(fmt.Sprintf("cur text %d: %s", v.TextIndex+1, v.Text)) + "\n" +
			active.Render(fmt.Sprintf("new text %d: %s", v.PendingTextIndex+1, v.PendingText))
	}
	return ""
}

func (m Model) helpLine(mode engine.Mode) string {
	switch mode {
	case engine.AdjustCV, engine.AdjustText:
		return "←/→:adjust  enter:commit  esc:cancel  q:quit"
	}
	return "space:run/pause  v:adjust cv  t:adjust text  [/]:analog select  +/-:wpm  q:quit"
}
