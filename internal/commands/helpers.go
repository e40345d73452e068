package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/gerunddev/quizmd/internal/config"
	"github.com/gerunddev/quizmd/internal/inspect"
	"github.com/gerunddev/quizmd/internal/parser"
	"github.com/gerunddev/quizmd/internal/quiz"
	"github.com/gerunddev/quizmd/internal/styles"
)

// Exit codes returned by every command
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// args is a command line split into positional arguments and --flags
type args struct {
	positional []string
	flags      map[string]bool
}

// parseArgs separates positional arguments from the known boolean flags.
// An unknown flag is an error.
func parseArgs(raw []string, known ...string) (args, error) {
	allowed := make(map[string]bool, len(known))
	for _, name := range known {
		allowed[name] = true
	}

	parsed := args{flags: make(map[string]bool)}
	for _, arg := range raw {
		if strings.HasPrefix(arg, "--") {
			name := strings.TrimPrefix(arg, "--")
			if !allowed[name] {
				return parsed, fmt.Errorf("unknown flag: %s", arg)
			}
			parsed.flags[name] = true
			continue
		}
		parsed.positional = append(parsed.positional, arg)
	}
	return parsed, nil
}

func (a args) has(flag string) bool {
	return a.flags[flag]
}

// question is one record after conversion, as shown by check, preview and browse
type question struct {
	Position int // 1-based
	Record   quiz.Record
	Document quiz.Document
	Parsed   *inspect.Document
	Issues   []quiz.Issue
	Err      error
}

// summary describes the answer blocks, or "" when the document could not
// be parsed back
func (q question) summary() string {
	if q.Parsed == nil {
		return ""
	}
	return q.Parsed.Summary()
}

// loadQuestions reads the source file and converts, in memory, every
// record a conversion run would not skip
func loadQuestions(path string) ([]question, error) {
	records, err := parser.LoadFile(path)
	if err != nil {
		return nil, err
	}

	questions := make([]question, 0, len(records))
	for i, rec := range records {
		if _, skip := rec.SkipReason(); skip {
			continue
		}
		q := question{
			Position: i + 1,
			Record:   rec,
			Issues:   quiz.Validate(rec),
		}
		q.Document, q.Err = quiz.Convert(rec, i)
		if q.Err == nil {
			// A document that cannot be read back still converts; it only
			// loses its summary.
			q.Parsed, _ = inspect.Parse([]byte(q.Document.Content))
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func loadConfig(w io.Writer) (*config.Config, bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(w, styles.ErrorStyle.Render("✗ Error loading config: "+err.Error()))
		return nil, false
	}
	return cfg, true
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLogFile reads the last N lines from the log file and extracts info
// about the most recent conversion
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastRun time.Time
	filesWritten := 0

	// Look for most recent "conversion completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "conversion completed") {
			// Format: 2025-11-27 14:11:57 INFO conversion completed
			if len(line) > 19 {
				if t, err := time.Parse(time.DateTime, line[:19]); err == nil {
					lastRun = t
				}
			}

			if idx := strings.Index(line, "files_written="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "files_written=%d", &filesWritten) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastRun, filesWritten
}
