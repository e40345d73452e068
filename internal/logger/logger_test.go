package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestConversionLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.DebugLevel)

	l.ConversionStarted("run-1", "questions.csv", "/tmp/out", 3)
	l.QuestionWritten(1, "question-1-what.md")
	l.RecordFailed(2, errors.New("boom"))
	l.StaleOutput("/tmp/out/question-9-old.md")
	l.ConversionCompleted("run-1", 1, 0, 1, 1500*time.Microsecond)

	output := buf.String()
	for _, want := range []string{
		"conversion started",
		"records=3",
		"question written",
		"file=question-1-what.md",
		"question failed",
		"error=boom",
		"output no longer generated",
		"conversion completed",
		"files_written=1",
		"errors=1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %q:\n%s", want, output)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)

	l.RecordSkipped(4, "empty row")
	if buf.Len() != 0 {
		t.Errorf("debug entry should be filtered at info level: %s", buf.String())
	}

	l.HeaderOnly(5, "essay")
	if !strings.Contains(buf.String(), "type=essay") {
		t.Errorf("warn entry missing: %s", buf.String())
	}
}

func TestNewRunLogger(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logs", "quizmd.log")

	var console bytes.Buffer
	l, cleanup, err := NewRunLogger(path, log.InfoLevel, &console)
	if err != nil {
		t.Fatalf("NewRunLogger failed: %v", err)
	}

	l.QuestionWritten(1, "question-1-a.md")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "question written") {
		t.Errorf("file log missing entry: %s", data)
	}
	if !strings.Contains(console.String(), "question written") {
		t.Errorf("console log missing entry: %s", console.String())
	}
}

func TestNewRunLoggerWithoutOutputs(t *testing.T) {
	l, cleanup, err := NewRunLogger("", log.InfoLevel)
	if err != nil {
		t.Fatalf("NewRunLogger failed: %v", err)
	}
	defer cleanup()

	// Must not panic
	l.QuestionWritten(1, "question-1-a.md")
}
