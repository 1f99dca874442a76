package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	sessiondto "uxlab/internal/modules/session/dto"
	stagedto "uxlab/internal/modules/stages/dto"
	studydto "uxlab/internal/modules/study/dto"
	"uxlab/internal/ui/components"
	"uxlab/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	GetPlan(ctx context.Context) (studydto.PlanOutput, error)
	TaskInstructions(ctx context.Context, taskName string) (studydto.DocumentOutput, error)
	StartTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error)
	StopTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error)
	TimerStatus(ctx context.Context) (sessiondto.TimerStatusOutput, error)
	SubmitTask(ctx context.Context, input stagedto.TaskInput) (stagedto.SubmissionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type PlanLoadedMsg struct {
	Plan studydto.PlanOutput
	Err  error
}

type InstructionsLoadedMsg struct {
	TaskName string
	Doc      studydto.DocumentOutput
	Err      error
}

// TimerStatusMsg bubbles to the app model so the status bar can mirror
// the stopwatch state.
type TimerStatusMsg struct {
	Out sessiondto.TimerStatusOutput
	Err error
}

// SubmittedMsg bubbles to the app model so it can refresh dataset counts.
type SubmittedMsg struct {
	Out stagedto.SubmissionOutput
	Err error
}

// TickMsg drives the once-a-second elapsed refresh while the stopwatch
// runs. Exported so the root model can route it here from any tab.
type TickMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	focusTask = iota
	focusSuccess
	focusNotes
	focusSubmit
	focusCount
)

// Model is the self-contained Bubble Tea model for the Task tab.
type Model struct {
	port     Port
	task     components.Choice
	success  components.Choice
	notes    textarea.Model
	instr    viewport.Model
	renderer *glamour.TermRenderer
	doc      studydto.DocumentOutput
	docFor   string
	timer    sessiondto.TimerStatusOutput
	ticking  bool
	focus    int
	note     string
	noteBad  bool
	width    int
	height   int
}

func New(port Port) Model {
	notes := textarea.New()
	notes.Placeholder = "observations, quotes, anything notable"
	notes.SetHeight(3)
	notes.ShowLineNumbers = false

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	m := Model{
		port:     port,
		task:     components.NewChoice("Task", nil),
		success:  components.NewChoice("Outcome", nil),
		notes:    notes,
		instr:    components.NewPagerViewport(),
		renderer: r,
	}
	m.task.SetFocused(true)
	return m
}

// Editing reports whether the notes field is capturing keystrokes.
func (m Model) Editing() bool { return m.notes.Focused() }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPlanCmd(), m.statusCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.instr.SetContent(m.renderDoc())

	case PlanLoadedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
			return m, nil
		}
		names := make([]string, len(msg.Plan.Tasks))
		for i, t := range msg.Plan.Tasks {
			names[i] = t.Name
		}
		m.task.SetOptions(names)
		m.success.SetOptions(msg.Plan.Success)
		if selected := m.task.Selected(); selected != "" {
			cmds = append(cmds, m.loadInstructionsCmd(selected))
		}

	case InstructionsLoadedMsg:
		if msg.TaskName != m.task.Selected() {
			return m, nil // stale load, the cursor moved on
		}
		if msg.Err != nil {
			m.instr.SetContent(theme.Bad.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.doc = msg.Doc
		m.docFor = msg.TaskName
		m.instr.SetContent(m.renderDoc())
		m.instr.GotoTop()

	case TimerStatusMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
			return m, nil
		}
		m.timer = msg.Out
		if m.timer.Running && !m.ticking {
			m.ticking = true
			cmds = append(cmds, tickCmd())
		}

	case TickMsg:
		if !m.timer.Running {
			m.ticking = false
			return m, nil
		}
		cmds = append(cmds, m.statusCmd(), tickCmd())

	case SubmittedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
		} else {
			m.note = fmt.Sprintf("task attempt recorded (#%d)", msg.Out.Seq)
			m.noteBad = false
			m.notes.SetValue("")
			cmds = append(cmds, m.statusCmd())
		}

	case tea.KeyMsg:
		if m.notes.Focused() {
			if msg.String() == "esc" {
				m.notes.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.notes, cmd = m.notes.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "left", "right":
			return m, m.moveChoice(msg.String())
		case "enter":
			switch m.focus {
			case focusNotes:
				m.notes.Focus()
				return m, textarea.Blink
			case focusSubmit:
				return m, m.submitCmd()
			default:
				m.setFocus(m.focus + 1)
				return m, nil
			}
		case "s":
			return m, m.startCmd()
		case "x":
			return m, m.stopCmd()
		}
	}

	var vCmd tea.Cmd
	m.instr, vCmd = m.instr.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := theme.Title.Render("Task Performance") + "  " + m.renderTimer()
	headerH := lipgloss.Height(header) + 1
	bodyH := m.height - headerH
	if bodyH < 1 {
		bodyH = 1
	}

	formW := m.width / 2
	form := lipgloss.NewStyle().Width(formW).Height(bodyH).Render(m.renderForm())

	instr := m.instr
	instr.Width = m.width - formW - 2
	instr.Height = bodyH - 2
	if instr.Height < 1 {
		instr.Height = 1
	}
	instrPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Surface1).
		Render(instr.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, form, instrPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
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
	m.task.SetFocused(focus == focusTask)
	m.success.SetFocused(focus == focusSuccess)
}

func (m *Model) resize() {
	m.instr.Width = m.width - m.width/2 - 2
	m.instr.Height = m.height - 4
	if m.instr.Height < 1 {
		m.instr.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(m.instr.Width-2, 20)),
	); err == nil {
		m.renderer = r
	}
}

func (m *Model) moveChoice(key string) tea.Cmd {
	switch m.focus {
	case focusTask:
		if key == "left" {
			m.task.Prev()
		} else {
			m.task.Next()
		}
		if selected := m.task.Selected(); selected != "" && selected != m.docFor {
			return m.loadInstructionsCmd(selected)
		}
	case focusSuccess:
		if key == "left" {
			m.success.Prev()
		} else {
			m.success.Next()
		}
	}
	return nil
}

func (m Model) renderTimer() string {
	switch {
	case m.timer.Running:
		return theme.Good.Render(fmt.Sprintf("● %.1fs", m.timer.ElapsedSeconds)) +
			theme.Muted.Render("  x: stop")
	case m.timer.HasDuration:
		return theme.Hot.Render(fmt.Sprintf("■ %.1fs ready", m.timer.LastSeconds)) +
			theme.Muted.Render("  submit attaches it, s: restart")
	default:
		return theme.Muted.Render("timer idle  s: start")
	}
}

func (m Model) renderForm() string {
	notesLabel := theme.Muted.Render("Notes")
	if m.focus == focusNotes {
		notesLabel = theme.Hot.Render("Notes")
		if !m.notes.Focused() {
			notesLabel += theme.Muted.Render("  enter: edit")
		}
	}
	rows := []string{
		m.task.View(),
		m.success.View(),
		notesLabel,
		m.notes.View(),
		"",
		m.renderSubmit(),
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSubmit() string {
	submit := theme.Muted.Render("[ Submit ]")
	if m.focus == focusSubmit {
		submit = theme.Hot.Render("[ Submit ]")
	}
	note := theme.Muted.Render("↑/↓: field  ←/→: pick  s/x: timer")
	switch {
	case m.noteBad:
		note = theme.Bad.Render(m.note)
	case m.note != "":
		note = theme.Good.Render(m.note)
	}
	return submit + "  " + note
}

func (m Model) renderDoc() string {
	if m.doc.Body == "" {
		return theme.Muted.Render("(no instructions loaded)")
	}
	body := "# " + m.doc.Title + "\n\n" + m.doc.Body
	if m.renderer != nil && m.doc.Format == "markdown" {
		if rendered, err := m.renderer.Render(body); err == nil {
			return rendered
		}
	}
	return theme.Title.Render(m.doc.Title) + "\n\n" + m.doc.Body
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TickMsg{} })
}

func (m Model) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.port.GetPlan(context.Background())
		return PlanLoadedMsg{Plan: plan, Err: err}
	}
}

func (m Model) loadInstructionsCmd(taskName string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.port.TaskInstructions(context.Background(), taskName)
		return InstructionsLoadedMsg{TaskName: taskName, Doc: doc, Err: err}
	}
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.TimerStatus(context.Background())
		return TimerStatusMsg{Out: out, Err: err}
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.StartTimer(context.Background())
		return TimerStatusMsg{Out: out, Err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.StopTimer(context.Background())
		return TimerStatusMsg{Out: out, Err: err}
	}
}

func (m Model) submitCmd() tea.Cmd {
	input := stagedto.TaskInput{
		TaskName: m.task.Selected(),
		Success:  m.success.Selected(),
		Notes:    strings.TrimSpace(m.notes.Value()),
	}
	return func() tea.Msg {
		out, err := m.port.SubmitTask(context.Background(), input)
		return SubmittedMsg{Out: out, Err: err}
	}
}
