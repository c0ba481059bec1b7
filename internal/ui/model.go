package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/treewalk/internal/progress"
	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/dustin/go-humanize"
)

const maxLogLines = 100

//nolint:gochecknoglobals
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// WalkProgressMsg is a [tea.Msg] containing [progress.Progress] information.
type WalkProgressMsg struct {
	t    time.Time
	data progress.Progress
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	title  string
	cancel context.CancelFunc

	uiHandler *Handler

	fullWidthWithBorders int

	data         progress.Progress
	spinner      spinner.Model
	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
func NewTeaModel(uiHandler *Handler, title string, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		title:        title,
		uiHandler:    uiHandler,
		cancel:       cancel,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		logsViewport: viewport.New(80, 20), //nolint:mnd
		logs:         make([]string, 0, maxLogLines),
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		updateWalkProgress(m.uiHandler.tracker),
	)
}

// updateWalkProgress produces a [tea.Cmd] for later scheduling in a
// [tea.Program]. When executed, it returns a [WalkProgressMsg].
func updateWalkProgress(tracker progressProvider) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { //nolint:mnd
		return WalkProgressMsg{
			t:    t,
			data: tracker.Snapshot(),
		}
	})
}

// Update is the principal message handling method of the model.
//
//nolint:ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fullWidthWithBorders = m.width - 2 //nolint:mnd

		// Progress panel, borders, log title and help line.
		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = max(m.height-progressPanelLines-6, 1) //nolint:mnd
		m.refreshLogs()

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case WalkProgressMsg:
		m.data = msg.data

		if !m.data.HasFinished {
			cmds = append(cmds, updateWalkProgress(m.uiHandler.tracker))
		}

	case LogMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))
		m.refreshLogs()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *TeaModel) refreshLogs() {
	if len(m.logs) == 0 {
		return
	}

	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	progressSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(m.formatProgressView())

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Process Information"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("q: quit gui • ctrl+c: quit program")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		progressSection,
		logsSection,
		helpSection,
	)
}

const progressPanelLines = 8

func (m TeaModel) formatProgressView() string {
	data := m.data

	var status string
	switch {
	case data.HasFinished && data.Err != nil:
		status = errorStyle.Render("Failed: " + data.Err.Error())
	case data.HasFinished:
		status = fmt.Sprintf("Finished at %s (took %s)",
			data.FinishTime.Format("15:04:05"),
			data.FinishTime.Sub(data.StartTime).Round(time.Millisecond),
		)
	case data.HasStarted:
		status = fmt.Sprintf("%s Walking since %s", m.spinner.View(), data.StartTime.Format("15:04:05"))
	default:
		status = m.spinner.View() + " Waiting for the walk to start"
	}

	types := make([]string, 0, len(data.ByType))
	for typ := schema.TypeUnknown; typ <= schema.TypeSocket; typ++ {
		if n, ok := data.ByType[typ]; ok {
			types = append(types, fmt.Sprintf("%s=%d", typ, n))
		}
	}

	details := fmt.Sprintf(
		"Directories: %d, Entries: %d, Size: %s, Max. Depth: %d\n"+
			"Types: %s\n"+
			"Path: %s\n",
		data.Dirs,
		data.Entries,
		humanize.IBytes(data.Bytes),
		data.MaxDepth,
		strings.Join(types, ", "),
		data.CurrentPath,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.fullWidthWithBorders).Render(m.title),
		"", // Empty line for spacing.
		infoStyle.Width(m.fullWidthWithBorders).Render(status),
		"",
		infoStyle.Width(m.fullWidthWithBorders).Render(details),
	)
}
