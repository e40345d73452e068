package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/quizmd/internal/logger"
	"github.com/gerunddev/quizmd/internal/quiz"
	"github.com/gerunddev/quizmd/internal/state"
)

// Options controls a conversion run
type Options struct {
	Source    string // Label recorded in logs and state, usually the input path
	OutputDir string
	DryRun    bool // Report what would be written without touching disk
	Strict    bool // Fail records that have any validation issue
	Force     bool // Rewrite files whose content is unchanged
}

// Outcome is what happened to one record
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeUnchanged
	OutcomePlanned
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomePlanned:
		return "planned"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports progress after each record
type Event struct {
	Position int // 1-based
	Total    int
	Filename string
	Outcome  Outcome
	Err      error
}

// Failure is a record that produced no file
type Failure struct {
	Position int // 1-based
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("question %d: %v", f.Position, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result represents the result of a conversion run
type Result struct {
	RunID      string
	Total      int
	Written    []string
	Unchanged  []string
	Planned    []string
	Skipped    int
	HeaderOnly int
	Failures   []Failure
	Stale      []string // Earlier outputs of the same source this run did not produce
	StartTime  time.Time
	EndTime    time.Time
}

// Converter turns records into question files, one record at a time.
// A failing record is reported and the run moves on to the next one.
type Converter struct {
	opts     Options
	state    *state.State
	log      *logger.Logger
	progress func(Event)
}

// NewConverter creates a converter. A nil state starts an empty manifest.
func NewConverter(opts Options, st *state.State) *Converter {
	if st == nil {
		st = state.NewState()
	}
	return &Converter{
		opts:  opts,
		state: st,
		log:   logger.Discard(),
	}
}

// SetLogger sets the logger for the converter
func (c *Converter) SetLogger(l *logger.Logger) {
	c.log = l
}

// OnProgress registers a callback invoked after every record
func (c *Converter) OnProgress(fn func(Event)) {
	c.progress = fn
}

// Run converts records in input order. It stops between records when ctx
// is cancelled and returns the partial result with ctx.Err().
func (c *Converter) Run(ctx context.Context, records []quiz.Record) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		Total:     len(records),
		StartTime: time.Now(),
	}
	defer func() {
		result.EndTime = time.Now()
	}()

	c.log.ConversionStarted(result.RunID, c.opts.Source, c.opts.OutputDir, len(records))

	if !c.opts.DryRun {
		if err := os.MkdirAll(c.opts.OutputDir, 0755); err != nil {
			return result, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		event := c.convertOne(rec, i, result)
		if c.progress != nil {
			c.progress(event)
		}
	}

	c.collectStale(result)

	c.log.ConversionCompleted(result.RunID, len(result.Written), len(result.Unchanged),
		len(result.Failures), time.Since(result.StartTime))

	return result, nil
}

func (c *Converter) convertOne(rec quiz.Record, index int, result *Result) Event {
	position := index + 1
	event := Event{Position: position, Total: result.Total}

	fail := func(err error) Event {
		result.Failures = append(result.Failures, Failure{Position: position, Err: err})
		c.log.RecordFailed(position, err)
		event.Outcome = OutcomeFailed
		event.Err = err
		return event
	}

	if reason, skip := rec.SkipReason(); skip {
		result.Skipped++
		c.log.RecordSkipped(position, reason)
		event.Outcome = OutcomeSkipped
		return event
	}

	issues := quiz.Validate(rec)
	if c.opts.Strict && len(issues) > 0 {
		return fail(&quiz.ValidationError{Index: index, Issues: issues})
	}
	for _, issue := range issues {
		if issue.Severity == quiz.SeverityWarning {
			c.log.ValidationWarning(position, issue.Field, issue.Message)
		}
	}

	doc, err := quiz.Convert(rec, index)
	if err != nil {
		return fail(err)
	}
	event.Filename = doc.Filename

	if questionType := rec.Text(quiz.FieldQuestionType); !quiz.IsKnownType(questionType) {
		result.HeaderOnly++
		c.log.HeaderOnly(position, questionType)
	}

	path := filepath.Join(c.opts.OutputDir, doc.Filename)

	needsWrite := true
	if !c.opts.Force {
		needsWrite, err = c.state.NeedsWrite(path, doc.Content)
		if err != nil {
			return fail(fmt.Errorf("failed to check %s: %w", doc.Filename, err))
		}
	}

	if c.opts.DryRun {
		if needsWrite {
			result.Planned = append(result.Planned, doc.Filename)
			event.Outcome = OutcomePlanned
		} else {
			result.Unchanged = append(result.Unchanged, doc.Filename)
			event.Outcome = OutcomeUnchanged
		}
		return event
	}

	if !needsWrite {
		if _, tracked := c.state.Files[path]; !tracked {
			if err := c.state.Update(path, c.opts.Source, position); err != nil {
				c.log.StateError("update", err)
			}
		}
		result.Unchanged = append(result.Unchanged, doc.Filename)
		c.log.QuestionUnchanged(position, doc.Filename)
		event.Outcome = OutcomeUnchanged
		return event
	}

	if err := os.WriteFile(path, []byte(doc.Content), 0644); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", doc.Filename, err))
	}
	if err := c.state.Update(path, c.opts.Source, position); err != nil {
		c.log.StateError("update", err)
	}

	result.Written = append(result.Written, doc.Filename)
	c.log.QuestionWritten(position, doc.Filename)
	event.Outcome = OutcomeWritten
	return event
}

// collectStale reports outputs that earlier runs of the same source wrote
// to this output directory and this run did not produce. They are dropped
// from the manifest but never deleted from disk.
func (c *Converter) collectStale(result *Result) {
	outputDir := filepath.Clean(c.opts.OutputDir)

	produced := make(map[string]bool)
	for _, names := range [][]string{result.Written, result.Unchanged, result.Planned} {
		for _, name := range names {
			produced[filepath.Join(outputDir, name)] = true
		}
	}

	for _, path := range c.state.FilesFrom(c.opts.Source) {
		if produced[path] || filepath.Dir(path) != outputDir {
			continue
		}
		result.Stale = append(result.Stale, filepath.Base(path))
		c.log.StaleOutput(path)
		if !c.opts.DryRun {
			c.state.Forget(path)
		}
	}
	sort.Strings(result.Stale)
}

// Duration returns how long the run took
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// String returns a human-readable summary of the conversion result
func (r *Result) String() string {
	return fmt.Sprintf(
		"Conversion complete: %d written, %d unchanged, %d planned, %d skipped, %d errors (took %v)",
		len(r.Written),
		len(r.Unchanged),
		len(r.Planned),
		r.Skipped,
		len(r.Failures),
		r.Duration().Round(time.Millisecond),
	)
}
