package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	recdto "uxlab/internal/modules/records/dto"
	reportdto "uxlab/internal/modules/report/dto"
	sessiondto "uxlab/internal/modules/session/dto"
	stagedto "uxlab/internal/modules/stages/dto"
	studydto "uxlab/internal/modules/study/dto"
	"uxlab/internal/ui/theme"
	consentview "uxlab/internal/ui/views/consent"
	demoview "uxlab/internal/ui/views/demographics"
	exitview "uxlab/internal/ui/views/exitq"
	reportview "uxlab/internal/ui/views/report"
	taskview "uxlab/internal/ui/views/task"
	welcomeview "uxlab/internal/ui/views/welcome"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type studyPort interface {
	ShowPlan(ctx context.Context) (studydto.PlanOutput, error)
	ShowConsentDocument(ctx context.Context) (studydto.DocumentOutput, error)
	ShowTaskInstructions(ctx context.Context, taskName string) (studydto.DocumentOutput, error)
}

type stagesPort interface {
	SubmitConsent(ctx context.Context, input stagedto.ConsentInput) (stagedto.SubmissionOutput, error)
	SubmitDemographics(ctx context.Context, input stagedto.DemographicsInput) (stagedto.SubmissionOutput, error)
	SubmitTask(ctx context.Context, input stagedto.TaskInput) (stagedto.SubmissionOutput, error)
	SubmitExit(ctx context.Context, input stagedto.ExitInput) (stagedto.SubmissionOutput, error)
}

type timerPort interface {
	StartTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error)
	StopTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error)
	Status(ctx context.Context) (sessiondto.TimerStatusOutput, error)
}

type recordsPort interface {
	ListDatasets(ctx context.Context) ([]recdto.DatasetInfoOutput, error)
}

type reportPort interface {
	Generate(ctx context.Context) (reportdto.ReportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabWelcome tabID = iota
	tabConsent
	tabDemographics
	tabTask
	tabExit
	tabReport
	tabCount
)

var tabLabels = [tabCount]string{
	"Welcome", "Consent", "Demographics", "Task", "Exit", "Report",
}

// ─── async messages ───────────────────────────────────────────────────────────

type countsLoadedMsg struct {
	counts []recdto.DatasetInfoOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	PrevTab key.Binding
	Start   key.Binding
	Stop    key.Binding
	Submit  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next stage")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous stage")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start task timer")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop task timer")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit stage")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.PrevTab},
		{k.Start, k.Stop, k.Submit},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the status bar
// with live record counts and stopwatch state, and the global help overlay.
// All business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	records recordsPort

	// sub-views (one per tab)
	welcomeView welcomeview.Model
	consentView consentview.Model
	demoView    demoview.Model
	taskView    taskview.Model
	exitView    exitview.Model
	reportView  reportview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	timer     sessiondto.TimerStatusOutput
	counts    []recdto.DatasetInfoOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	study studyPort,
	stages stagesPort,
	timer timerPort,
	records recordsPort,
	report reportPort,
) Model {
	return Model{
		records:     records,
		welcomeView: welcomeview.New(welcomeBridge{study: study}),
		consentView: consentview.New(consentBridge{study: study, stages: stages}),
		demoView:    demoview.New(demoBridge{study: study, stages: stages}),
		taskView:    taskview.New(taskBridge{study: study, timer: timer, stages: stages}),
		exitView:    exitview.New(exitBridge{study: study, stages: stages}),
		reportView:  reportview.New(reportBridge{report: report}),
		activeTab:   tabWelcome,
		keys:        defaultKeys(),
		help:        newHelp(),
		status:      "ready",
	}
}

// newHelp returns a help model in full mode; the status bar already carries
// the short bindings, so the overlay shows everything.
func newHelp() help.Model {
	h := help.New()
	h.ShowAll = true
	return h
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.welcomeView.Init(),
		m.consentView.Init(),
		m.demoView.Init(),
		m.taskView.Init(),
		m.exitView.Init(),
		m.reportView.Init(),
		m.loadCountsCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case countsLoadedMsg:
		if msg.err != nil {
			m.status = "record counts: " + msg.err.Error()
			return m, nil
		}
		m.counts = msg.counts
		return m, nil

	// Async messages carry their owning view's package type, so they are
	// routed there explicitly instead of to whichever tab is active.
	case welcomeview.PlanLoadedMsg:
		if msg.Err == nil {
			m.status = msg.Plan.Title
		}
		var cmd tea.Cmd
		m.welcomeView, cmd = m.welcomeView.Update(msg)
		return m, cmd

	case consentview.DocLoadedMsg:
		var cmd tea.Cmd
		m.consentView, cmd = m.consentView.Update(msg)
		return m, cmd

	case consentview.SubmittedMsg:
		m.noteSubmission(msg.Out, msg.Err, &cmds)
		var cmd tea.Cmd
		m.consentView, cmd = m.consentView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case demoview.PlanLoadedMsg:
		var cmd tea.Cmd
		m.demoView, cmd = m.demoView.Update(msg)
		return m, cmd

	case demoview.SubmittedMsg:
		m.noteSubmission(msg.Out, msg.Err, &cmds)
		var cmd tea.Cmd
		m.demoView, cmd = m.demoView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case taskview.PlanLoadedMsg:
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		return m, cmd

	case taskview.InstructionsLoadedMsg:
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		return m, cmd

	case taskview.TimerStatusMsg:
		if msg.Err == nil {
			m.timer = msg.Out
		}
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		return m, cmd

	case taskview.TickMsg:
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		return m, cmd

	case taskview.SubmittedMsg:
		m.noteSubmission(msg.Out, msg.Err, &cmds)
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case exitview.PlanLoadedMsg:
		var cmd tea.Cmd
		m.exitView, cmd = m.exitView.Update(msg)
		return m, cmd

	case exitview.SubmittedMsg:
		m.noteSubmission(msg.Out, msg.Err, &cmds)
		var cmd tea.Cmd
		m.exitView, cmd = m.exitView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case reportview.LoadedMsg:
		var cmd tea.Cmd
		m.reportView, cmd = m.reportView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while a text field is capturing keystrokes.
		if m.subViewEditing() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabWelcome:
		m.welcomeView, tabCmd = m.welcomeView.Update(msg)
	case tabConsent:
		m.consentView, tabCmd = m.consentView.Update(msg)
	case tabDemographics:
		m.demoView, tabCmd = m.demoView.Update(msg)
	case tabTask:
		m.taskView, tabCmd = m.taskView.Update(msg)
	case tabExit:
		m.exitView, tabCmd = m.exitView.Update(msg)
	case tabReport:
		m.reportView, tabCmd = m.reportView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	inner := m.activeView()
	if m.showHelp {
		inner = m.help.View(m.keys)
	}
	// Pad short tabs so the status bar stays on the bottom row.
	content := lipgloss.NewStyle().Width(m.width).Height(contentH).Render(inner)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabWelcome:
		return m.welcomeView.View()
	case tabConsent:
		return m.consentView.View()
	case tabDemographics:
		return m.demoView.View()
	case tabTask:
		return m.taskView.View()
	case tabExit:
		return m.exitView.View()
	case tabReport:
		return m.reportView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "uxlab  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	switch {
	case m.timer.Running:
		left = theme.Good.Render(fmt.Sprintf("● %.1fs", m.timer.ElapsedSeconds)) + "  " + left
	case m.timer.HasDuration:
		left = theme.Hot.Render(fmt.Sprintf("■ %.1fs", m.timer.LastSeconds)) + "  " + left
	}
	right := m.renderCounts() + theme.Muted.Render("?:help  tab:stage  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderCounts() string {
	if len(m.counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.counts))
	for _, info := range m.counts {
		parts = append(parts, fmt.Sprintf("%s:%d", info.Dataset, info.Records))
	}
	return theme.Muted.Render(strings.Join(parts, " ")) + "  "
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// noteSubmission reflects a stage submission in the status bar and, when it
// stuck, schedules a record-count refresh.
func (m *Model) noteSubmission(out stagedto.SubmissionOutput, err error, cmds *[]tea.Cmd) {
	if err != nil {
		m.status = "submit failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("%s #%d recorded", out.Dataset, out.Seq)
	*cmds = append(*cmds, m.loadCountsCmd())
}

// subViewEditing reports whether the active tab has a focused text field,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewEditing() bool {
	switch m.activeTab {
	case tabDemographics:
		return m.demoView.Editing()
	case tabTask:
		return m.taskView.Editing()
	case tabExit:
		return m.exitView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	// Two lines each for the tab bar and the status bar.
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.welcomeView, _ = m.welcomeView.Update(sz)
	m.consentView, _ = m.consentView.Update(sz)
	m.demoView, _ = m.demoView.Update(sz)
	m.taskView, _ = m.taskView.Update(sz)
	m.exitView, _ = m.exitView.Update(sz)
	m.reportView, _ = m.reportView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCountsCmd() tea.Cmd {
	return func() tea.Msg {
		counts, err := m.records.ListDatasets(context.Background())
		return countsLoadedMsg{counts: counts, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows the broad module ports to the minimal interface needed
// by a specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type welcomeBridge struct{ study studyPort }

func (b welcomeBridge) GetPlan(ctx context.Context) (studydto.PlanOutput, error) {
	return b.study.ShowPlan(ctx)
}

type consentBridge struct {
	study  studyPort
	stages stagesPort
}

func (b consentBridge) ConsentDocument(ctx context.Context) (studydto.DocumentOutput, error) {
	return b.study.ShowConsentDocument(ctx)
}
func (b consentBridge) SubmitConsent(ctx context.Context, input stagedto.ConsentInput) (stagedto.SubmissionOutput, error) {
	return b.stages.SubmitConsent(ctx, input)
}

type demoBridge struct {
	study  studyPort
	stages stagesPort
}

func (b demoBridge) GetPlan(ctx context.Context) (studydto.PlanOutput, error) {
	return b.study.ShowPlan(ctx)
}
func (b demoBridge) SubmitDemographics(ctx context.Context, input stagedto.DemographicsInput) (stagedto.SubmissionOutput, error) {
	return b.stages.SubmitDemographics(ctx, input)
}

type taskBridge struct {
	study  studyPort
	timer  timerPort
	stages stagesPort
}

func (b taskBridge) GetPlan(ctx context.Context) (studydto.PlanOutput, error) {
	return b.study.ShowPlan(ctx)
}
func (b taskBridge) TaskInstructions(ctx context.Context, taskName string) (studydto.DocumentOutput, error) {
	return b.study.ShowTaskInstructions(ctx, taskName)
}
func (b taskBridge) StartTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error) {
	return b.timer.StartTimer(ctx)
}
func (b taskBridge) StopTimer(ctx context.Context) (sessiondto.TimerStatusOutput, error) {
	return b.timer.StopTimer(ctx)
}
func (b taskBridge) TimerStatus(ctx context.Context) (sessiondto.TimerStatusOutput, error) {
	return b.timer.Status(ctx)
}
func (b taskBridge) SubmitTask(ctx context.Context, input stagedto.TaskInput) (stagedto.SubmissionOutput, error) {
	return b.stages.SubmitTask(ctx, input)
}

type exitBridge struct {
	study  studyPort
	stages stagesPort
}

func (b exitBridge) GetPlan(ctx context.Context) (studydto.PlanOutput, error) {
	return b.study.ShowPlan(ctx)
}
func (b exitBridge) SubmitExit(ctx context.Context, input stagedto.ExitInput) (stagedto.SubmissionOutput, error) {
	return b.stages.SubmitExit(ctx, input)
}

type reportBridge struct{ report reportPort }

func (b reportBridge) Generate(ctx context.Context) (reportdto.ReportOutput, error) {
	return b.report.Generate(ctx)
}
