package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lg/tdee-wizard/internal/report"
	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

/* ─── Styles ──────────────────────────────────────────────────────────── */

var (
	accent        = lipgloss.Color("#7D56F4")
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	resultStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

/* ─── Model ───────────────────────────────────────────────────────────── */

// model is the interactive wizard screen. All state changes go through flow;
// the model only owns the widgets.
type model struct {
	flow    flow
	input   textinput.Model
	cursor  int
	errMsg  string
	today   time.Time
	quiet   bool // skip the result screen, the caller prints the result
	aborted bool
	log     *zap.Logger
}

func newModel(today time.Time, log *zap.Logger) model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(accent)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(accent)

	return model{
		flow:  newFlow(),
		input: ti,
		today: today,
		log:   log,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "esc" {
		m.aborted = true
		return m, tea.Quit
	}

	if m.flow.state.Step == wizard.StepWelcome {
		if key == "enter" {
			return m.start()
		}
		return m, nil
	}

	p, ok := m.flow.prompt()
	if !ok {
		return m, nil
	}

	switch p.Kind {
	case wizard.KindChoice:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(p.Choices)-1 {
				m.cursor++
			}
		case "enter":
			return m.commit(p.Choices[m.cursor].Value)
		}
		return m, nil

	case wizard.KindDate:
		switch key {
		case "left":
			m.shiftDate(-1)
			return m, nil
		case "right":
			m.shiftDate(1)
			return m, nil
		}
	}

	if key == "enter" {
		return m.commit(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) start() (tea.Model, tea.Cmd) {
	f, err := m.flow.start()
	if err != nil {
		m.errMsg = errorText(err)
		return m, nil
	}
	m.flow = f
	cmd := m.load()
	return m, cmd
}

// commit hands the entered value to the flow and loads whatever it asks next.
func (m model) commit(value string) (tea.Model, tea.Cmd) {
	f, err := m.flow.commit(value)
	m.flow = f
	if err != nil {
		m.log.Debug("entry rejected", zap.String("step", f.state.Step.String()), zap.Error(err))
		m.errMsg = errorText(err)
		cmd := m.load()
		return m, cmd
	}
	m.errMsg = ""
	if f.result != nil {
		return m, tea.Quit
	}
	cmd := m.load()
	return m, cmd
}

// load points the widgets at the current prompt, prefilled from the draft.
func (m *model) load() tea.Cmd {
	p, ok := m.flow.prompt()
	if !ok {
		m.input.Blur()
		return nil
	}
	value := m.flow.defaultValue(p, m.today)
	if p.Kind == wizard.KindChoice {
		m.cursor = 0
		for i, c := range p.Choices {
			if strings.EqualFold(c.Value, value) {
				m.cursor = i
			}
		}
		m.input.Blur()
		return nil
	}
	m.input.Placeholder = p.Placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// shiftDate moves the date being entered by days. Unparseable text restarts
// from today.
func (m *model) shiftDate(days int) {
	t, err := tdee.ParseDate(m.input.Value())
	if err != nil {
		t = m.today
	}
	m.input.SetValue(t.AddDate(0, 0, days).Format(tdee.DateLayout))
	m.input.CursorEnd()
}

/* ─── Views ───────────────────────────────────────────────────────────── */

func (m model) View() string {
	if m.aborted {
		return ""
	}
	if m.flow.result != nil {
		if m.quiet {
			return ""
		}
		draft, _ := m.flow.state.Profile()
		return m.viewResult(report.Build(draft, *m.flow.result)) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TDEE Calculator") + "\n\n")
	if m.flow.state.Step == wizard.StepWelcome {
		b.WriteString("Estimate the calories you burn each day and what to eat\n")
		b.WriteString("to reach your goal weight.\n\n")
		b.WriteString(hintStyle.Render("enter: get started • esc: quit") + "\n")
		return b.String()
	}

	p, _ := m.flow.prompt()
	b.WriteString(hintStyle.Render(fmt.Sprintf("Step %d of %d", int(p.Step), wizard.FieldCount)) + "\n")
	label := p.Label
	if p.Unit != "" {
		label += " (" + p.Unit + ")"
	}
	b.WriteString(labelStyle.Render(label) + "\n")

	switch p.Kind {
	case wizard.KindChoice:
		for i, c := range p.Choices {
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("› "+c.Label) + "\n")
			} else {
				b.WriteString("  " + c.Label + "\n")
			}
		}
	default:
		b.WriteString(m.input.View() + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render(m.hint(p)) + "\n")
	return b.String()
}

func (m model) hint(p wizard.Prompt) string {
	action := "next"
	if m.flow.editing != "" || p.Step == wizard.StepActivityLevel {
		action = "submit"
	}
	switch p.Kind {
	case wizard.KindDate:
		return "←/→: change day • enter: " + action + " • esc: quit"
	case wizard.KindChoice:
		return "↑/↓: choose • enter: " + action + " • esc: quit"
	}
	return "enter: " + action + " • esc: quit"
}

func (m model) viewResult(s report.Summary) string {
	lines := s.Lines()
	n := len(s.Fields)
	body := strings.Join(lines[:n], "\n") + "\n\n" + labelStyle.Render(strings.Join(lines[n:], "\n"))
	return resultStyle.Render(titleStyle.Render(s.Title) + "\n\n" + body)
}
