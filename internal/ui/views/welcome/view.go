package welcome

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	studydto "uxlab/internal/modules/study/dto"
	"uxlab/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	GetPlan(ctx context.Context) (studydto.PlanOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// PlanLoadedMsg carries the study plan; the app model also watches it to
// pick up the study title for the status bar.
type PlanLoadedMsg struct {
	Plan studydto.PlanOutput
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	plan     studydto.PlanOutput
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		renderer: r,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPlanCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.viewport.SetContent(m.renderPlan())

	case PlanLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.viewport.SetContent(theme.Bad.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.plan = msg.Plan
		m.viewport.SetContent(m.renderPlan())
		m.viewport.GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading study plan…")
	}
	footer := theme.Muted.Render("tab: next stage  ↑/↓: scroll  ?: help  q: quit")
	vpHeight := m.height - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	vp := m.viewport
	vp.Height = vpHeight
	return lipgloss.JoinVertical(lipgloss.Left, vp.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = m.height - 1
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderPlan() string {
	if m.plan.Title == "" {
		return theme.Muted.Render("(no study plan)")
	}
	var sb strings.Builder
	sb.WriteString("# " + m.plan.Title + "\n\n")
	sb.WriteString(m.plan.Intro + "\n")
	if len(m.plan.Tasks) > 0 {
		sb.WriteString("\n## Tasks\n\n")
		for _, task := range m.plan.Tasks {
			line := "- **" + task.Name + "**"
			if task.Description != "" {
				line += ": " + task.Description
			}
			sb.WriteString(line + "\n")
		}
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(sb.String()); err == nil {
			return rendered
		}
	}
	return sb.String()
}

func (m Model) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.port.GetPlan(context.Background())
		return PlanLoadedMsg{Plan: plan, Err: err}
	}
}
