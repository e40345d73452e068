package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/quizmd/internal/converter"
	"github.com/gerunddev/quizmd/internal/diff"
	"github.com/gerunddev/quizmd/internal/logger"
	"github.com/gerunddev/quizmd/internal/parser"
	"github.com/gerunddev/quizmd/internal/quiz"
	"github.com/gerunddev/quizmd/internal/render"
	"github.com/gerunddev/quizmd/internal/state"
	"github.com/gerunddev/quizmd/internal/styles"
	"github.com/gerunddev/quizmd/internal/tui"
)

const convertUsage = "usage: quizmd convert <file> [output-dir] [--dry-run] [--diff] [--strict] [--force] [--quiet]"

// Convert converts a question file into one Markdown file per question
func Convert(rawArgs []string) int {
	interactive := isTerminal(os.Stdout)
	return runConvert(rawArgs, os.Stdout, interactive)
}

func runConvert(rawArgs []string, w io.Writer, interactive bool) int {
	titleStyle := styles.TitleStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	a, err := parseArgs(rawArgs, "dry-run", "diff", "strict", "force", "quiet")
	if err != nil || len(a.positional) == 0 || len(a.positional) > 2 {
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render("✗ "+err.Error()))
		}
		fmt.Fprintln(w, convertUsage)
		return ExitUsage
	}

	cfg, ok := loadConfig(w)
	if !ok {
		return ExitError
	}

	source := a.positional[0]
	outputDir := cfg.OutputDir
	if len(a.positional) == 2 {
		outputDir = a.positional[1]
	}

	opts := converter.Options{
		Source:    source,
		OutputDir: outputDir,
		DryRun:    a.has("dry-run"),
		Strict:    a.has("strict") || cfg.Strict,
		Force:     a.has("force") || cfg.Force,
	}
	if abs, err := filepath.Abs(source); err == nil {
		opts.Source = abs
	}
	quiet := a.has("quiet")
	interactive = interactive && !quiet

	if !quiet {
		if opts.DryRun {
			fmt.Fprintln(w, titleStyle.Render("quizmd Convert (DRY RUN)"))
		} else {
			fmt.Fprintln(w, titleStyle.Render("quizmd Convert"))
		}
		fmt.Fprintf(w, "%s → %s\n", dimStyle.Render(source), dimStyle.Render(outputDir))
		if opts.DryRun {
			fmt.Fprintln(w, dimStyle.Render("(dry run - no files will be modified)"))
		}
		fmt.Fprintln(w)
	}

	records, err := parser.LoadFile(source)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ Error reading source: "+err.Error()))
		return ExitError
	}

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ Error loading state: "+err.Error()))
		return ExitError
	}

	l, cleanup, err := logger.NewRunLogger(cfg.LogFile, cfg.Level())
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ Error opening log file: "+err.Error()))
		return ExitError
	}
	defer cleanup()
	l.ConfigLoaded(outputDir, cfg.LogFile, opts.Strict)

	if a.has("diff") {
		printDiffs(w, records, outputDir, render.DefaultWidth)
	}

	conv := converter.NewConverter(opts, st)
	conv.SetLogger(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *converter.Result
	if interactive {
		result, err = runWithProgress(ctx, conv, source, records, opts.DryRun)
	} else {
		result, err = conv.Run(ctx, records)
		if !quiet || result == nil || len(result.Failures) > 0 || err != nil {
			fmt.Fprint(w, tui.SummaryView(result, err, opts.DryRun))
		}
	}

	if !opts.DryRun && result != nil {
		if saveErr := st.Save(cfg.StateFile); saveErr != nil {
			l.StateError("save", saveErr)
			fmt.Fprintln(w, errorStyle.Render("✗ Error saving state: "+saveErr.Error()))
			return ExitError
		}
	}

	if err != nil || result == nil || len(result.Failures) > 0 {
		return ExitError
	}
	return ExitOK
}

// runWithProgress runs the conversion in the background and shows a
// spinner until it finishes
func runWithProgress(ctx context.Context, conv *converter.Converter, source string, records []quiz.Record, dryRun bool) (*converter.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.InitConvertModel(filepath.Base(source), len(records), dryRun)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	conv.OnProgress(func(e converter.Event) {
		p.Send(tui.ProgressMsg{Event: e})
	})

	var (
		result *converter.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = conv.Run(ctx, records)
		p.Send(tui.ConvertDoneMsg{Result: result, Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return result, fmt.Errorf("progress display failed: %w", err)
	}

	// Quitting early with q cancels the remaining records
	cancel()
	<-done
	return result, runErr
}

// printDiffs shows, for every record, how the regenerated document differs
// from the file currently in outputDir
func printDiffs(w io.Writer, records []quiz.Record, outputDir string, width int) int {
	changed := 0
	for i, rec := range records {
		if _, skip := rec.SkipReason(); skip {
			continue
		}
		doc, err := quiz.Convert(rec, i)
		if err != nil {
			fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("✗ question %d: %v", i+1, err)))
			continue
		}

		unified, err := diff.File(filepath.Join(outputDir, doc.Filename), doc.Content)
		if err != nil {
			fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+err.Error()))
			continue
		}
		if unified == "" {
			continue
		}

		changed++
		fmt.Fprintln(w, styles.FileStyle.Render(doc.Filename))
		fmt.Fprintln(w, diff.Render(unified, width))
	}

	if changed == 0 {
		fmt.Fprintln(w, styles.SuccessStyle.Render("✓ No differences"))
	}
	return changed
}
