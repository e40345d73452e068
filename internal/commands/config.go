package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/quizmd/internal/config"
	"github.com/gerunddev/quizmd/internal/styles"
)

// Config prints the effective configuration and the most recent run.
// With --init it writes the default configuration file first.
func Config(rawArgs []string) int {
	return runConfig(rawArgs, os.Stdout)
}

func runConfig(rawArgs []string, w io.Writer) int {
	labelStyle := styles.LabelStyle
	dimStyle := styles.DimStyle

	a, err := parseArgs(rawArgs, "init")
	if err != nil || len(a.positional) > 0 {
		if err != nil {
			fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+err.Error()))
		}
		fmt.Fprintln(w, "usage: quizmd config [--init]")
		return ExitUsage
	}

	if a.has("init") {
		if _, err := os.Stat(config.ConfigPath()); err == nil {
			fmt.Fprintln(w, styles.WarningStyle.Render("! Config file already exists: "+config.ConfigPath()))
		} else if err := config.DefaultConfig().Save(); err != nil {
			fmt.Fprintln(w, styles.ErrorStyle.Render("✗ Error writing config: "+err.Error()))
			return ExitError
		} else {
			fmt.Fprintln(w, styles.SuccessStyle.Render("✓ Wrote "+config.ConfigPath()))
		}
		fmt.Fprintln(w)
	}

	cfg, ok := loadConfig(w)
	if !ok {
		return ExitError
	}

	fmt.Fprintln(w, styles.TitleStyle.Render("quizmd Configuration"))
	fmt.Fprintln(w)

	source := config.ConfigPath()
	if _, err := os.Stat(source); os.IsNotExist(err) {
		source += " (not found, using defaults)"
	}
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Config file:"), dimStyle.Render(source))

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintln(w, styles.ErrorStyle.Render("✗ Error: "+err.Error()))
		return ExitError
	}
	fmt.Fprintln(w, string(data))
	fmt.Fprintln(w)

	_, lastRun, written := ParseLogFile(cfg.LogFile, 200)
	if lastRun.IsZero() {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Last conversion:"), dimStyle.Render("none recorded"))
	} else {
		fmt.Fprintf(w, "%s %s (%d file(s) written)\n", labelStyle.Render("Last conversion:"),
			lastRun.Format("2006-01-02 15:04:05"), written)
	}
	return ExitOK
}
