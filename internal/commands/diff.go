package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/quizmd/internal/parser"
	"github.com/gerunddev/quizmd/internal/render"
	"github.com/gerunddev/quizmd/internal/styles"
)

// Diff shows how regenerated documents differ from the files on disk
func Diff(rawArgs []string) int {
	return runDiff(rawArgs, os.Stdout)
}

func runDiff(rawArgs []string, w io.Writer) int {
	errorStyle := styles.ErrorStyle

	a, err := parseArgs(rawArgs)
	if err != nil || len(a.positional) == 0 || len(a.positional) > 2 {
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render("✗ "+err.Error()))
		}
		fmt.Fprintln(w, "usage: quizmd diff <file> [output-dir]")
		return ExitUsage
	}

	cfg, ok := loadConfig(w)
	if !ok {
		return ExitError
	}
	outputDir := cfg.OutputDir
	if len(a.positional) == 2 {
		outputDir = a.positional[1]
	}

	records, err := parser.LoadFile(a.positional[0])
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ Error reading source: "+err.Error()))
		return ExitError
	}

	printDiffs(w, records, outputDir, render.DefaultWidth)
	return ExitOK
}
