package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lprun/internal/app"
	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseDiscovering Phase = iota
	PhaseSending
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	StageMsg struct {
		Label string
	}
	StageDoneMsg    struct{}
	TargetFoundMsg  struct{ Target domain.Target }
	CopyStartedMsg  struct{ Copy, Copies int }
	ProgressMsg     struct{ Progress domain.TransferProgress }
	CopyFinishedMsg struct{ Copy, Copies int }
	SubmittedMsg    struct {
		Printer string
		JobID   int
		Copy    int
		Copies  int
	}
	DoneMsg struct {
		Result app.Result
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// Config for the TUI
type Config struct {
	Document string
	Copies   int
	Verbose  bool
}

// Model is the main TUI model
type Model struct {
	config   Config
	Phase    Phase
	Target   domain.Target
	Result   app.Result
	Err      error
	Quitting bool

	spinner  spinner.Model
	progress progress.Model
	stage    string
	current  domain.TransferProgress
	jobs     []string
	width    int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseDiscovering,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Transfers cannot be interrupted mid-copy; only leave once
			// the run has finished.
			if m.Phase == PhaseDone || m.Phase == PhaseError || msg.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case StageMsg:
		m.stage = msg.Label
		return m, nil

	case StageDoneMsg:
		m.stage = ""
		return m, nil

	case TargetFoundMsg:
		m.Target = msg.Target
		m.Phase = PhaseSending
		return m, nil

	case CopyStartedMsg:
		m.Phase = PhaseSending
		m.current = domain.TransferProgress{Copy: msg.Copy, Copies: msg.Copies}
		return m, nil

	case ProgressMsg:
		m.current = msg.Progress
		return m, nil

	case CopyFinishedMsg:
		m.jobs = append(m.jobs, fmt.Sprintf("copy %d/%d sent", msg.Copy, msg.Copies))
		return m, nil

	case SubmittedMsg:
		m.Phase = PhaseSending
		m.jobs = append(m.jobs, fmt.Sprintf("job %d queued on %s (%d/%d)", msg.JobID, msg.Printer, msg.Copy, msg.Copies))
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Result = msg.Result
		m.Target = msg.Result.Target
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseDiscovering || m.Phase == PhaseSending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseSending && m.current.TotalBytes > 0 {
			return m, tea.Batch(m.progress.SetPercent(fraction(m.current)), tickCmd())
		}
		if m.Phase == PhaseDiscovering || m.Phase == PhaseSending {
			return m, tickCmd()
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseDiscovering:
		b.WriteString(m.renderDiscovering())
	case PhaseSending:
		b.WriteString(m.renderSending())
	case PhaseDone:
		b.WriteString(m.renderJobs())
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderJobs())
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconPrinter + " lprun")
	subtitle := subtitleStyle.Render("Print anything, anywhere on the LAN")

	lines := []string{title, subtitle, ""}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%s Document: %s", iconDocument, m.config.Document)))
	if !m.Target.IsZero() {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%s Printer:  %s (%s)", iconArrow, m.Target, m.Target.Kind)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDiscovering() string {
	label := m.stage
	if label == "" {
		label = "Discovering printers..."
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), label)
}

func (m Model) renderSending() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Printing"))
	b.WriteString("\n\n")
	b.WriteString(m.renderJobs())

	if m.current.TotalBytes == 0 {
		b.WriteString(fmt.Sprintf("  %s Sending...\n", m.spinner.View()))
		return b.String()
	}

	percent := fraction(m.current)
	b.WriteString(fmt.Sprintf("  %s Sending copy %d/%d\n\n", m.spinner.View(), m.current.Copy, m.current.Copies))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d bytes", m.current.BytesSent, m.current.TotalBytes)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))
	return b.String()
}

func (m Model) renderJobs() string {
	var b strings.Builder
	for _, job := range m.jobs {
		b.WriteString(fmt.Sprintf("  %s %s\n", successStyle.Render(iconSuccess), job))
	}
	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Done"))
	b.WriteString("\n\n")

	copies := fmt.Sprintf("%d", m.Result.Copies)
	b.WriteString(fmt.Sprintf("  %s %s\n\n", successStyle.Render(iconSuccess), successStyle.Render("Print job delivered")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Printer:"), statValueStyle.Render(m.Result.Target.String())))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Copies:"), statValueStyle.Render(copies)))
	if m.config.Verbose && m.Result.History.ID != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("History id:"), dimStyle.Render(m.Result.History.ID)))
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(appErrors.UserMessage(m.Err))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseDiscovering:
		help = "Looking for a printer... ctrl+c to abort"
	case PhaseSending:
		help = "Sending... Please wait"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func fraction(p domain.TransferProgress) float64 {
	if p.TotalBytes == 0 {
		return 0
	}
	f := float64(p.BytesSent) / float64(p.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}
