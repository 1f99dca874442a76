package exitq

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
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
	SubmitExit(ctx context.Context, input stagedto.ExitInput) (stagedto.SubmissionOutput, error)
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
	focusSatisfaction = iota
	focusDifficulty
	focusFeedback
	focusSubmit
	focusCount
)

// Model is the self-contained Bubble Tea model for the Exit tab.
type Model struct {
	port         Port
	satisfaction components.Scale
	difficulty   components.Scale
	feedback     textarea.Model
	focus        int
	note         string
	noteBad      bool
	width        int
	height       int
}

func New(port Port) Model {
	feedback := textarea.New()
	feedback.Placeholder = "what worked, what got in the way"
	feedback.SetHeight(4)
	feedback.ShowLineNumbers = false

	m := Model{
		port:         port,
		satisfaction: components.NewScale("Overall satisfaction", 1, 5),
		difficulty:   components.NewScale("Overall difficulty  ", 1, 5),
		feedback:     feedback,
	}
	m.satisfaction.SetFocused(true)
	return m
}

// Editing reports whether the feedback field is capturing keystrokes.
func (m Model) Editing() bool { return m.feedback.Focused() }

func (m Model) Init() tea.Cmd { return m.loadPlanCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
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
		m.satisfaction = components.NewScale("Overall satisfaction", msg.Plan.ScaleMin, msg.Plan.ScaleMax)
		m.difficulty = components.NewScale("Overall difficulty  ", msg.Plan.ScaleMin, msg.Plan.ScaleMax)
		m.setFocus(m.focus)

	case SubmittedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
		} else {
			m.note = fmt.Sprintf("exit questionnaire recorded (#%d)", msg.Out.Seq)
			m.noteBad = false
			m.satisfaction.Reset()
			m.difficulty.Reset()
			m.feedback.SetValue("")
			m.setFocus(focusSatisfaction)
		}

	case tea.KeyMsg:
		if m.feedback.Focused() {
			if msg.String() == "esc" {
				m.feedback.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.feedback, cmd = m.feedback.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up":
			m.setFocus(m.focus - 1)
		case "down":
			m.setFocus(m.focus + 1)
		case "left":
			m.moveScale(-1)
		case "right":
			m.moveScale(1)
		case "enter":
			switch m.focus {
			case focusFeedback:
				m.feedback.Focus()
				return m, textarea.Blink
			case focusSubmit:
				return m, m.submitCmd()
			default:
				m.setFocus(m.focus + 1)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	header := theme.Title.Render("Exit Questionnaire") + "\n" +
		theme.Muted.Render("Rate the session, then leave any parting thoughts.")

	feedbackLabel := theme.Muted.Render("Feedback")
	if m.focus == focusFeedback {
		feedbackLabel = theme.Hot.Render("Feedback")
		if !m.feedback.Focused() {
			feedbackLabel += theme.Muted.Render("  enter: edit")
		}
	}
	rows := []string{
		m.satisfaction.View(),
		m.difficulty.View(),
		feedbackLabel,
		m.feedback.View(),
		"",
		m.renderSubmit(),
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(rows, "\n"))
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
	m.satisfaction.SetFocused(focus == focusSatisfaction)
	m.difficulty.SetFocused(focus == focusDifficulty)
}

func (m *Model) moveScale(dir int) {
	scale := &m.satisfaction
	if m.focus == focusDifficulty {
		scale = &m.difficulty
	} else if m.focus != focusSatisfaction {
		return
	}
	if dir < 0 {
		scale.Dec()
	} else {
		scale.Inc()
	}
}

func (m Model) renderSubmit() string {
	submit := theme.Muted.Render("[ Submit ]")
	if m.focus == focusSubmit {
		submit = theme.Hot.Render("[ Submit ]")
	}
	note := theme.Muted.Render("↑/↓: field  ←/→: rate  enter: submit")
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
	input := stagedto.ExitInput{
		Satisfaction: m.satisfaction.Value(),
		Difficulty:   m.difficulty.Value(),
		Feedback:     strings.TrimSpace(m.feedback.Value()),
	}
	return func() tea.Msg {
		out, err := m.port.SubmitExit(context.Background(), input)
		return SubmittedMsg{Out: out, Err: err}
	}
}
