package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gerunddev/quizmd/internal/render"
	"github.com/gerunddev/quizmd/internal/styles"
)

// Preview renders a single question of a file in the terminal
func Preview(rawArgs []string) int {
	return runPreview(rawArgs, os.Stdout, isTerminal(os.Stdout))
}

func runPreview(rawArgs []string, w io.Writer, interactive bool) int {
	errorStyle := styles.ErrorStyle

	a, err := parseArgs(rawArgs, "raw")
	if err != nil || len(a.positional) != 2 {
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render("✗ "+err.Error()))
		}
		fmt.Fprintln(w, "usage: quizmd preview <file> <n> [--raw]")
		return ExitUsage
	}

	n, err := strconv.Atoi(a.positional[1])
	if err != nil || n < 1 {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ Invalid question number: %s", a.positional[1])))
		return ExitUsage
	}

	questions, err := loadQuestions(a.positional[0])
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ Error reading source: "+err.Error()))
		return ExitError
	}

	for _, q := range questions {
		if q.Position != n {
			continue
		}
		if q.Err != nil {
			fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ question %d: %v", n, q.Err)))
			return ExitError
		}

		fmt.Fprintln(w, styles.FileStyle.Render(q.Document.Filename))
		switch {
		case a.has("raw"):
			fmt.Fprint(w, q.Document.Content)
		case interactive:
			fmt.Fprint(w, render.Markdown(q.Document.Content, render.DefaultWidth))
		default:
			// Pipes and files get the layout without escape codes
			plain, err := render.Plain(q.Document.Content, render.DefaultWidth)
			if err != nil {
				plain = q.Document.Content
			}
			fmt.Fprint(w, plain)
		}
		return ExitOK
	}

	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ No question %d in %s", n, a.positional[0])))
	return ExitError
}
