package demographics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	stagedto "uxlab/internal/modules/stages/dto"
	studydto "uxlab/internal/modules/study/dto"
	"uxlab/internal/ui/components"
	"uxlab/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	GetPlan(ctx context.Context) (studydto.PlanOutput, error)
	SubmitDemographics(ctx context.Context, input stagedto.DemographicsInput) (stagedto.SubmissionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PlanLoadedMsg struct {
	Plan studydto.PlanOutput
	Err  error
}

// SubmittedMsg bubbles to the app model so it can refresh dataset counts.
type SubmittedMsg struct {
	Out stagedto.SubmissionOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	focusName = iota
	focusAge
	focusOccupation
	focusFamiliarity
	focusSubmit
	focusCount
)

// Model is the self-contained Bubble Tea model for the Demographics tab.
type Model struct {
	port        Port
	inputs      [3]textinput.Model // name, age, occupation
	familiarity components.Choice
	focus       int
	note        string
	noteBad     bool
	width       int
	height      int
}

func New(port Port) Model {
	name := textinput.New()
	name.Placeholder = "participant name (optional)"
	name.CharLimit = 80
	name.Focus()

	age := textinput.New()
	age.Placeholder = "age 10..100"
	age.CharLimit = 3

	occupation := textinput.New()
	occupation.Placeholder = "occupation (optional)"
	occupation.CharLimit = 80

	return Model{
		port:        port,
		inputs:      [3]textinput.Model{name, age, occupation},
		familiarity: components.NewChoice("Familiarity", nil),
	}
}

// Editing reports whether a text field is capturing keystrokes, so the
// parent model can hold back its global key bindings.
func (m Model) Editing() bool {
	for _, in := range m.inputs {
		if in.Focused() {
			return true
		}
	}
	return false
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPlanCmd(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case PlanLoadedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
			return m, nil
		}
		m.familiarity.SetOptions(msg.Plan.Familiarity)

	case SubmittedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
		} else {
			m.note = fmt.Sprintf("demographics recorded (#%d)", msg.Out.Seq)
			m.noteBad = false
			m.resetForm()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.blurInputs()
			return m, nil
		case "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "left":
			if m.focus == focusFamiliarity {
				m.familiarity.Prev()
				return m, nil
			}
		case "right":
			if m.focus == focusFamiliarity {
				m.familiarity.Next()
				return m, nil
			}
		case "enter":
			if m.focus == focusSubmit {
				return m, m.submitCmd()
			}
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := theme.Title.Render("Participant Demographics") + "\n" +
		theme.Muted.Render("All fields may be left blank except age and familiarity.")

	rows := []string{
		m.fieldRow("Name", focusName),
		m.fieldRow("Age", focusAge),
		m.fieldRow("Occupation", focusOccupation),
		m.familiarity.View(),
		"",
		m.renderSubmit(),
	}
	form := strings.Join(rows, "\n")

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", form)
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setFocus(focus int) {
	if focus < 0 {
		focus = focusCount - 1
	}
	if focus >= focusCount {
		focus = 0
	}
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.familiarity.SetFocused(focus == focusFamiliarity)
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.familiarity.Reset()
	m.setFocus(focusName)
}

func (m Model) fieldRow(label string, focus int) string {
	style := theme.Muted
	if m.focus == focus {
		style = theme.Hot
	}
	return style.Render(fmt.Sprintf("%-11s", label)) + " " + m.inputs[focus].View()
}

func (m Model) renderSubmit() string {
	submit := theme.Muted.Render("[ Submit ]")
	if m.focus == focusSubmit {
		submit = theme.Hot.Render("[ Submit ]")
	}
	note := theme.Muted.Render("↑/↓: field  enter: next/submit  esc: stop typing")
	switch {
	case m.noteBad:
		note = theme.Bad.Render(m.note)
	case m.note != "":
		note = theme.Good.Render(m.note)
	}
	return submit + "  " + note
}

func (m Model) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.port.GetPlan(context.Background())
		return PlanLoadedMsg{Plan: plan, Err: err}
	}
}

func (m Model) submitCmd() tea.Cmd {
	input := stagedto.DemographicsInput{
		Name:        strings.TrimSpace(m.inputs[focusName].Value()),
		Occupation:  strings.TrimSpace(m.inputs[focusOccupation].Value()),
		Familiarity: m.familiarity.Selected(),
	}
	rawAge := strings.TrimSpace(m.inputs[focusAge].Value())
	age, err := strconv.Atoi(rawAge)
	if err != nil {
		return func() tea.Msg {
			return SubmittedMsg{Err: fmt.Errorf("age %q is not a number", rawAge)}
		}
	}
	input.Age = age
	return func() tea.Msg {
		out, err := m.port.SubmitDemographics(context.Background(), input)
		return SubmittedMsg{Out: out, Err: err}
	}
}
