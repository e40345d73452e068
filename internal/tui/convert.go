package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/quizmd/internal/converter"
	"github.com/gerunddev/quizmd/internal/styles"
)

var (
	spinnerStyle   = styles.SpinnerStyle
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	errorStyle     = styles.ErrorStyle
	warningStyle   = styles.WarningStyle
	highlightStyle = styles.HighlightStyle
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.LabelStyle
	fileStyle      = styles.FileStyle
)

// ProgressMsg is sent after each record is processed
type ProgressMsg struct {
	Event converter.Event
}

// ConvertDoneMsg is sent when the conversion run finishes
type ConvertDoneMsg struct {
	Result *converter.Result
	Err    error
}

// convertModel is the Bubble Tea model for the conversion progress display
type convertModel struct {
	spinner  spinner.Model
	source   string
	dryRun   bool
	total    int
	done     int
	last     string
	complete bool
	result   *converter.Result
	err      error
}

// InitConvertModel creates a new conversion progress model
func InitConvertModel(source string, total int, dryRun bool) convertModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return convertModel{
		spinner: s,
		source:  source,
		total:   total,
		dryRun:  dryRun,
	}
}

func (m convertModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m convertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case ProgressMsg:
		m.done = msg.Event.Position
		if msg.Event.Filename != "" {
			m.last = msg.Event.Filename
		}
		return m, nil

	case ConvertDoneMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m convertModel) View() string {
	if m.complete {
		return SummaryView(m.result, m.err, m.dryRun)
	}

	status := fmt.Sprintf("Converting %s (%d/%d)", m.source, m.done, m.total)
	if m.last != "" {
		status += " " + fileStyle.Render(m.last)
	}
	return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), status)
}

// SummaryView renders the outcome of a conversion run
func SummaryView(result *converter.Result, err error, dryRun bool) string {
	if err != nil && result == nil {
		return errorStyle.Render("✗ Conversion failed: "+err.Error()) + "\n"
	}

	var b strings.Builder

	switch {
	case dryRun:
		b.WriteString(highlightStyle.Render(fmt.Sprintf("→ Would write %d file(s)", len(result.Planned))))
	case len(result.Written) == 0:
		b.WriteString(successStyle.Render("✓ Nothing to write"))
	default:
		b.WriteString(successStyle.Render(fmt.Sprintf("✓ Wrote %d file(s)", len(result.Written))))
	}
	if len(result.Unchanged) > 0 {
		b.WriteString(", " + helpStyle.Render(fmt.Sprintf("%d unchanged", len(result.Unchanged))))
	}
	if result.Skipped > 0 {
		b.WriteString(", " + helpStyle.Render(fmt.Sprintf("%d skipped", result.Skipped)))
	}
	if result.HeaderOnly > 0 {
		b.WriteString(", " + warningStyle.Render(fmt.Sprintf("%d without answers", result.HeaderOnly)))
	}
	if len(result.Failures) > 0 {
		b.WriteString(", " + errorStyle.Render(fmt.Sprintf("%d error(s)", len(result.Failures))))
	}
	b.WriteString("\n")

	for _, failure := range result.Failures {
		b.WriteString(errorStyle.Render("  ✗ "+failure.Error()) + "\n")
	}
	for _, name := range result.Stale {
		b.WriteString(warningStyle.Render("  ! "+name+" is no longer generated") + "\n")
	}
	if err != nil {
		b.WriteString(errorStyle.Render("✗ Stopped early: "+err.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("Completed in %v", result.Duration().Round(time.Millisecond))))
	b.WriteString("\n")

	return b.String()
}
