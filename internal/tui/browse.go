package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/quizmd/internal/diff"
	"github.com/gerunddev/quizmd/internal/render"
	"github.com/gerunddev/quizmd/internal/styles"
)

var tableStyle = styles.TableStyle

// BrowseData holds every question of a source file
type BrowseData struct {
	Source    string
	Questions []QuestionItem
}

// QuestionItem is one row of the question browser
type QuestionItem struct {
	Position int // 1-based
	Filename string
	Type     string
	Question string
	Summary  string
	Markdown string
	Err      error
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

// DiffMsg is sent when a diff against the output directory is ready
type DiffMsg struct {
	Content string
	Err     error
}

type browseMode int

const (
	modeTable browseMode = iota
	modePreview
	modeRaw
	modeDiff
)

type browseModel struct {
	table    table.Model
	viewport viewport.Model
	data     *BrowseData
	err      error
	ready    bool
	mode     browseMode
	selected *QuestionItem
	width    int
	height   int
	diffFunc func(item QuestionItem) (string, error)
}

// InitBrowseModel creates a new question browser model. diffFunc may be nil,
// in which case the diff view is disabled.
func InitBrowseModel(diffFunc func(QuestionItem) (string, error)) browseModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Type", Width: 16},
		{Title: "Question", Width: 44},
		{Title: "Answers", Width: 18},
		{Title: "File", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = styles.HeaderStyle.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = styles.ViewportStyle

	return browseModel{
		table:    t,
		viewport: vp,
		width:    render.DefaultWidth,
		diffFunc: diffFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8

	case tea.KeyMsg:
		if m.mode != modeTable {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.mode = modeTable
				return m, nil
			case "m":
				return m.show(modeRaw), nil
			case "p":
				return m.show(modePreview), nil
			case "d":
				return m.showDiff()
			}
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter", "p":
			if m.selectCurrent() {
				return m.show(modePreview), nil
			}
			return m, nil
		case "m":
			if m.selectCurrent() {
				return m.show(modeRaw), nil
			}
			return m, nil
		case "d":
			if m.selectCurrent() {
				return m.showDiff()
			}
			return m, nil
		}
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Questions))
			for _, q := range m.data.Questions {
				summary := q.Summary
				file := q.Filename
				if q.Err != nil {
					summary = "error"
					file = q.Err.Error()
				}
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", q.Position),
					q.Type,
					excerpt(q.Question, 44),
					summary,
					file,
				})
			}
			m.table.SetRows(rows)
		}
		return m, nil

	case DiffMsg:
		content := msg.Content
		switch {
		case msg.Err != nil:
			content = errorStyle.Render("✗ " + msg.Err.Error())
		case content == "":
			content = successStyle.Render("✓ Output file is up to date")
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

// selectCurrent points selected at the question under the table cursor
func (m *browseModel) selectCurrent() bool {
	if m.data == nil || len(m.data.Questions) == 0 {
		return false
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.data.Questions) {
		return false
	}
	m.selected = &m.data.Questions[idx]
	return true
}

func (m browseModel) show(mode browseMode) browseModel {
	if m.selected == nil {
		return m
	}
	m.mode = mode

	var content string
	switch {
	case m.selected.Err != nil:
		content = errorStyle.Render("✗ " + m.selected.Err.Error())
	case mode == modeRaw:
		content = m.selected.Markdown
	default:
		content = render.Markdown(m.selected.Markdown, m.contentWidth())
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	return m
}

func (m browseModel) showDiff() (tea.Model, tea.Cmd) {
	if m.selected == nil || m.diffFunc == nil || m.selected.Err != nil {
		return m, nil
	}
	m.mode = modeDiff
	m.viewport.SetContent(helpStyle.Render("Computing diff..."))

	item := *m.selected
	diffFunc := m.diffFunc
	width := m.contentWidth()
	return m, func() tea.Msg {
		unified, err := diffFunc(item)
		if err != nil || unified == "" {
			return DiffMsg{Err: err}
		}
		return DiffMsg{Content: diff.Render(unified, width)}
	}
}

func (m browseModel) contentWidth() int {
	if m.viewport.Width > 8 {
		return m.viewport.Width - 4
	}
	return render.DefaultWidth
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("quizmd Question Browser"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.mode == modeTable {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s: %d question(s)", m.data.Source, len(m.data.Questions))))
		b.WriteString("\n\n")
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
		help := "↑/k up • ↓/j down • enter/p preview • m markdown"
		if m.diffFunc != nil {
			help += " • d diff"
		}
		b.WriteString(helpStyle.Render(help + " • q quit"))
		b.WriteString("\n")
		return b.String()
	}

	var heading string
	switch m.mode {
	case modeRaw:
		heading = "Markdown"
	case modeDiff:
		heading = "Diff"
	default:
		heading = "Preview"
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s: question %d", heading, m.selected.Position)))
	if m.selected.Filename != "" {
		b.WriteString(" " + fileStyle.Render(m.selected.Filename))
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • p preview • m markdown • d diff • esc/q back"))
	b.WriteString("\n")

	return b.String()
}

// excerpt shortens text to a single line of at most n runes
func excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
