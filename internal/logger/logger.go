package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return NewWithLevel(w, level)
}

// NewRunLogger logs to the file at path, when path is set, and to every
// extra writer. The cleanup func closes the file.
func NewRunLogger(path string, level log.Level, extra ...io.Writer) (*Logger, func(), error) {
	writers := append([]io.Writer(nil), extra...)
	cleanup := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		cleanup = func() {
			f.Close()
		}
	}

	if len(writers) == 0 {
		return Discard(), cleanup, nil
	}
	return NewMultiLogger(level, writers...), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of a conversion run
func (l *Logger) ConversionStarted(runID, source, outputDir string, records int) {
	l.Info("conversion started",
		"run_id", runID,
		"source", source,
		"output_dir", outputDir,
		"records", records)
}

// ConversionCompleted logs the completion of a conversion run
func (l *Logger) ConversionCompleted(runID string, written, unchanged, errors int, duration time.Duration) {
	l.Info("conversion completed",
		"run_id", runID,
		"files_written", written,
		"unchanged", unchanged,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// QuestionWritten logs a question document written to disk
func (l *Logger) QuestionWritten(position int, filename string) {
	l.Info("question written",
		"question", position,
		"file", filename)
}

// QuestionUnchanged logs a question whose output already matches
func (l *Logger) QuestionUnchanged(position int, filename string) {
	l.Debug("question unchanged",
		"question", position,
		"file", filename)
}

// RecordFailed logs a record that produced no document
func (l *Logger) RecordFailed(position int, err error) {
	l.Error("question failed",
		"question", position,
		"error", err)
}

// RecordSkipped logs when a record is skipped
func (l *Logger) RecordSkipped(position int, reason string) {
	l.Debug("question skipped",
		"question", position,
		"reason", reason)
}

// HeaderOnly logs a record rendered without answers because its type is unknown
func (l *Logger) HeaderOnly(position int, questionType string) {
	l.Warn("question has no answer blocks",
		"question", position,
		"type", questionType)
}

// ValidationWarning logs a non-fatal validation issue
func (l *Logger) ValidationWarning(position int, field, message string) {
	l.Warn("validation warning",
		"question", position,
		"field", field,
		"message", message)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// StaleOutput logs an output file an earlier run wrote that this run no
// longer produces
func (l *Logger) StaleOutput(path string) {
	l.Warn("output no longer generated",
		"file", path)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(outputDir, logFile string, strict bool) {
	l.Debug("config loaded",
		"output_dir", outputDir,
		"log_file", logFile,
		"strict", strict)
}
