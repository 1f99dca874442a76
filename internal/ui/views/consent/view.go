package consent

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	stagedto "uxlab/internal/modules/stages/dto"
	studydto "uxlab/internal/modules/study/dto"
	"uxlab/internal/ui/components"
	"uxlab/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ConsentDocument(ctx context.Context) (studydto.DocumentOutput, error)
	SubmitConsent(ctx context.Context, input stagedto.ConsentInput) (stagedto.SubmissionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DocLoadedMsg struct {
	Doc studydto.DocumentOutput
	Err error
}

// SubmittedMsg bubbles to the app model so it can refresh dataset counts
// and show the outcome in the status bar.
type SubmittedMsg struct {
	Out stagedto.SubmissionOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	focusAgree = iota
	focusSubmit
	focusCount
)

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	agree    components.Checkbox
	doc      studydto.DocumentOutput
	focus    int
	loading  bool
	note     string
	noteBad  bool
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

	agree := components.NewCheckbox("I agree to participate in this usability test.")
	agree.SetFocused(true)

	return Model{
		port:     port,
		viewport: components.NewPagerViewport(),
		spinner:  sp,
		renderer: r,
		agree:    agree,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDocCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.viewport.SetContent(m.renderDoc())

	case DocLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.viewport.SetContent(theme.Bad.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.doc = msg.Doc
		m.viewport.SetContent(m.renderDoc())
		m.viewport.GotoTop()

	case SubmittedMsg:
		if msg.Err != nil {
			m.note = msg.Err.Error()
			m.noteBad = true
		} else {
			m.note = fmt.Sprintf("consent recorded (#%d), thank you", msg.Out.Seq)
			m.noteBad = false
			m.agree.Reset()
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			m.setFocus(m.focus - 1)
		case "down":
			m.setFocus(m.focus + 1)
		case " ":
			if m.focus == focusAgree {
				m.agree.Toggle()
			}
		case "enter":
			if m.focus == focusSubmit {
				return m, m.submitCmd()
			}
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
			m.spinner.View()+" Loading consent form…")
	}

	form := m.renderForm()
	formH := lipgloss.Height(form)
	vpHeight := m.height - formH
	if vpHeight < 1 {
		vpHeight = 1
	}
	vp := m.viewport
	vp.Height = vpHeight
	return lipgloss.JoinVertical(lipgloss.Left, vp.View(), form)
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
	m.agree.SetFocused(focus == focusAgree)
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = m.height - 4
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

func (m Model) renderDoc() string {
	if m.doc.Body == "" {
		return theme.Muted.Render("(no consent document)")
	}
	body := "# " + m.doc.Title + "\n\n" + m.doc.Body
	if m.renderer != nil && m.doc.Format == "markdown" {
		if rendered, err := m.renderer.Render(body); err == nil {
			return rendered
		}
	}
	return theme.Title.Render(m.doc.Title) + "\n\n" + m.doc.Body
}

func (m Model) renderForm() string {
	submit := theme.Muted.Render("[ Submit ]")
	if m.focus == focusSubmit {
		submit = theme.Hot.Render("[ Submit ]")
	}
	note := ""
	switch {
	case m.noteBad:
		note = theme.Bad.Render(m.note)
	case m.note != "":
		note = theme.Good.Render(m.note)
	default:
		note = theme.Muted.Render("space: toggle  ↑/↓: focus  enter: submit  pgup/pgdn: scroll")
	}
	return "\n" + m.agree.View() + "\n" + submit + "  " + note
}

func (m Model) loadDocCmd() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.port.ConsentDocument(context.Background())
		return DocLoadedMsg{Doc: doc, Err: err}
	}
}

func (m Model) submitCmd() tea.Cmd {
	agreed := m.agree.Checked()
	return func() tea.Msg {
		out, err := m.port.SubmitConsent(context.Background(), stagedto.ConsentInput{Agreed: agreed})
		return SubmittedMsg{Out: out, Err: err}
	}
}
