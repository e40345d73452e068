package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/quizmd/internal/quiz"
	"github.com/gerunddev/quizmd/internal/styles"
)

// Check validates every record of a question file without writing anything
func Check(rawArgs []string) int {
	return runCheck(rawArgs, os.Stdout)
}

func runCheck(rawArgs []string, w io.Writer) int {
	errorStyle := styles.ErrorStyle
	warningStyle := styles.WarningStyle
	successStyle := styles.SuccessStyle
	dimStyle := styles.DimStyle

	a, err := parseArgs(rawArgs, "strict")
	if err != nil || len(a.positional) != 1 {
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render("✗ "+err.Error()))
		}
		fmt.Fprintln(w, "usage: quizmd check <file> [--strict]")
		return ExitUsage
	}

	questions, err := loadQuestions(a.positional[0])
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ Error reading source: "+err.Error()))
		return ExitError
	}

	fmt.Fprintln(w, styles.TitleStyle.Render("quizmd Check"))
	fmt.Fprintln(w)

	var errorCount, warningCount int
	for _, q := range questions {
		label := fmt.Sprintf("%3d", q.Position)

		if q.Err != nil {
			errorCount++
			fmt.Fprintf(w, "%s %s\n", label, errorStyle.Render("✗ "+q.Err.Error()))
			continue
		}

		line := fmt.Sprintf("%s %s %s", label, styles.FileStyle.Render(q.Document.Filename), dimStyle.Render(q.summary()))
		if quiz.HasErrors(q.Issues) {
			fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), line)
		} else if len(q.Issues) > 0 {
			fmt.Fprintf(w, "%s %s\n", warningStyle.Render("!"), line)
		} else {
			fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), line)
		}

		for _, issue := range q.Issues {
			if issue.Severity == quiz.SeverityError {
				errorCount++
				fmt.Fprintln(w, errorStyle.Render("      "+issue.String()))
			} else {
				warningCount++
				fmt.Fprintln(w, warningStyle.Render("      "+issue.String()))
			}
		}
	}

	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d question(s), %d error(s), %d warning(s)", len(questions), errorCount, warningCount)
	switch {
	case errorCount > 0:
		fmt.Fprintln(w, errorStyle.Render("✗ "+summary))
		return ExitError
	case warningCount > 0 && a.has("strict"):
		fmt.Fprintln(w, warningStyle.Render("✗ "+summary))
		return ExitError
	case warningCount > 0:
		fmt.Fprintln(w, warningStyle.Render("! "+summary))
	default:
		fmt.Fprintln(w, successStyle.Render("✓ "+summary))
	}
	return ExitOK
}
