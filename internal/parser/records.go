package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gerunddev/quizmd/internal/quiz"
)

// ErrUnsupportedDocument is returned for YAML/JSON sources whose top level
// is neither a list of records nor a mapping with a "questions" list.
var ErrUnsupportedDocument = errors.New("expected a list of questions or a mapping with a questions key")

// Format identifies a record source encoding
type Format int

const (
	// FormatCSV is a header-first CSV file (default)
	FormatCSV Format = iota
	// FormatYAML covers YAML and JSON record lists
	FormatYAML
)

// DetectFormat picks the source format from the file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// LoadFile reads every record from the file at path
func LoadFile(path string) ([]quiz.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	return Read(f, DetectFormat(path))
}

// Read parses records from r in the given format
func Read(r io.Reader, format Format) ([]quiz.Record, error) {
	switch format {
	case FormatYAML:
		return ReadYAML(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("unsupported source format: %d", format)
	}
}

// ReadYAML parses a YAML or JSON document holding question records, either
// as a top-level list or under a "questions" key. Keys and string values
// are trimmed the same way CSV cells are.
func ReadYAML(r io.Reader) ([]quiz.Record, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	var rows []map[string]any
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to decode questions: %w", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Questions []map[string]any `yaml:"questions"`
		}
		if err := doc.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode questions: %w", err)
		}
		if wrapper.Questions == nil {
			return nil, ErrUnsupportedDocument
		}
		rows = wrapper.Questions
	default:
		return nil, ErrUnsupportedDocument
	}

	records := make([]quiz.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(quiz.Record, len(row))
		for key, value := range row {
			if s, ok := value.(string); ok {
				value = strings.TrimSpace(s)
			}
			rec[strings.TrimSpace(key)] = value
		}
		records = append(records, rec)
	}

	return records, nil
}
