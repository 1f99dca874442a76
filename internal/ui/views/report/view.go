package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "uxlab/internal/modules/report/dto"
	"uxlab/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Generate(ctx context.Context) (reportdto.ReportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Report reportdto.ReportOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the self-contained Bubble Tea model for the Report tab.
type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	report   reportdto.ReportOutput
	loading  bool
	loaded   bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.generateCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = m.height - 3
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		if m.loaded {
			m.viewport.SetContent(m.renderReport())
		}

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.viewport.SetContent(theme.Bad.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.report = msg.Report
		m.loaded = true
		m.viewport.SetContent(m.renderReport())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, tea.Batch(m.generateCmd(), m.spinner.Tick)
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
			m.spinner.View()+" Crunching records…")
	}

	header := theme.Title.Render("Study Report") + "  " +
		theme.Muted.Render("generated "+m.report.GeneratedAt+"  r: refresh  ↑/↓: scroll")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderReport() string {
	var sb strings.Builder
	for _, section := range m.report.Sections {
		sb.WriteString(theme.Title.Render(section.Title) + "\n")
		if len(section.Rows) == 0 {
			sb.WriteString(theme.Muted.Render("(no records yet)") + "\n\n")
			continue
		}
		sb.WriteString(renderTable(section) + "\n\n")
	}
	if avg := m.report.ExitAverages; avg != nil {
		sb.WriteString(theme.Title.Render("Averages") + "\n")
		sb.WriteString(fmt.Sprintf("Average Satisfaction  %s\n",
			theme.Good.Render(fmt.Sprintf("%.2f", avg.MeanSatisfaction))))
		sb.WriteString(fmt.Sprintf("Average Difficulty    %s\n",
			theme.Good.Render(fmt.Sprintf("%.2f", avg.MeanDifficulty))))
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("over %d exit responses", avg.Responses)) + "\n")
	}
	return sb.String()
}

func renderTable(section reportdto.SectionOutput) string {
	widths := columnWidths(section)
	cols := make([]table.Column, len(section.Columns))
	for i, name := range section.Columns {
		cols[i] = table.Column{Title: name, Width: widths[i]}
	}
	rows := make([]table.Row, len(section.Rows))
	for i, r := range section.Rows {
		rows[i] = table.Row(r)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(theme.Surface1).
		BorderBottom(true).Bold(true).Foreground(theme.Sapphire)
	// The table only scrolls the report viewport, so hide the cursor row.
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)),
	)
	t.SetStyles(styles)
	return t.View()
}

func columnWidths(section reportdto.SectionOutput) []int {
	widths := make([]int, len(section.Columns))
	for i, name := range section.Columns {
		widths[i] = len(name)
	}
	for _, row := range section.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := len(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, w := range widths {
		if w > 32 {
			widths[i] = 32
		}
	}
	return widths
}

func (m Model) generateCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Generate(context.Background())
		return LoadedMsg{Report: out, Err: err}
	}
}
