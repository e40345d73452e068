package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/quizmd/internal/diff"
	"github.com/gerunddev/quizmd/internal/quiz"
	"github.com/gerunddev/quizmd/internal/styles"
	"github.com/gerunddev/quizmd/internal/tui"
)

// Browse shows every question of a file in an interactive browser
func Browse(rawArgs []string) int {
	errorStyle := styles.ErrorStyle

	a, err := parseArgs(rawArgs)
	if err != nil || len(a.positional) == 0 || len(a.positional) > 2 {
		fmt.Println("usage: quizmd browse <file> [output-dir]")
		return ExitUsage
	}
	source := a.positional[0]

	cfg, ok := loadConfig(os.Stdout)
	if !ok {
		return ExitError
	}
	outputDir := cfg.OutputDir
	if len(a.positional) == 2 {
		outputDir = a.positional[1]
	}

	diffFunc := func(item tui.QuestionItem) (string, error) {
		return diff.File(filepath.Join(outputDir, item.Filename), item.Markdown)
	}

	m := tui.InitBrowseModel(diffFunc)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())

	// Load questions in the background so the UI starts immediately
	go func() {
		data, err := browseData(source)
		p.Send(tui.BrowseMsg{Data: data, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(errorStyle.Render("✗ Error: " + err.Error()))
		return ExitError
	}
	return ExitOK
}

func browseData(source string) (*tui.BrowseData, error) {
	questions, err := loadQuestions(source)
	if err != nil {
		return nil, err
	}

	data := &tui.BrowseData{Source: filepath.Base(source)}
	for _, q := range questions {
		item := tui.QuestionItem{
			Position: q.Position,
			Type:     q.Record.Text(quiz.FieldQuestionType),
			Question: q.Record.Text(quiz.FieldQuestion),
			Err:      q.Err,
		}
		if q.Err == nil {
			item.Filename = q.Document.Filename
			item.Markdown = q.Document.Content
			item.Summary = q.summary()
		}
		data.Questions = append(data.Questions, item)
	}
	return data, nil
}
