package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gerunddev/quizmd/internal/quiz"
)

const utf8BOM = "\ufeff"

// ReadCSV parses a header-first CSV stream into records. Headers and cells
// are trimmed, blank lines are skipped, and rows may have fewer or more
// cells than the header: missing cells are left out of the record and
// extra cells that hold text are kept under quiz.FieldExtraCells.
func ReadCSV(r io.Reader) ([]quiz.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	headers := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		headers[i] = strings.TrimSpace(name)
	}

	var records []quiz.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}

		if isEmptyRow(row) {
			continue
		}

		rec := make(quiz.Record, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			rec[headers[i]] = strings.TrimSpace(cell)
		}
		if len(row) > len(headers) && !isEmptyRow(row[len(headers):]) {
			extra := make([]string, 0, len(row)-len(headers))
			for _, cell := range row[len(headers):] {
				extra = append(extra, strings.TrimSpace(cell))
			}
			rec[quiz.FieldExtraCells] = extra
		}
		records = append(records, rec)
	}

	return records, nil
}

// isEmptyRow matches lines that hold nothing but separators and spaces.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
