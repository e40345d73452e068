package quiz

import (
	"encoding/json"
	"testing"
)

func TestRecordField(t *testing.T) {
	rec := Record{
		"string":  "value",
		"padded":  "  value ",
		"blank":   " \t ",
		"empty":   "",
		"nil":     nil,
		"float":   3.0,
		"decimal": 2.5,
		"int":     7,
		"zero":    0,
		"number":  json.Number("42"),
		"bool":    true,
	}

	tests := []struct {
		field    string
		expected string
		present  bool
	}{
		{field: "string", expected: "value", present: true},
		{field: "padded", expected: "  value ", present: true},
		{field: "blank", present: false},
		{field: "empty", present: false},
		{field: "nil", present: false},
		{field: "missing", present: false},
		{field: "float", expected: "3", present: true},
		{field: "decimal", expected: "2.5", present: true},
		{field: "int", expected: "7", present: true},
		{field: "zero", expected: "0", present: true},
		{field: "number", expected: "42", present: true},
		{field: "bool", expected: "true", present: true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			value, ok := rec.Field(tt.field)
			if ok != tt.present {
				t.Fatalf("Field(%q) present = %v, want %v", tt.field, ok, tt.present)
			}
			if value != tt.expected {
				t.Errorf("Field(%q) = %q, want %q", tt.field, value, tt.expected)
			}
		})
	}
}

func TestRecordIsBlank(t *testing.T) {
	if !(Record{}).IsBlank() {
		t.Error("empty record should be blank")
	}
	if !(Record{"Question": "", "Category": nil}).IsBlank() {
		t.Error("record with only empty values should be blank")
	}
	if (Record{"Question": "", "Category": "x"}).IsBlank() {
		t.Error("record with a value should not be blank")
	}
}

func TestRecordSkipReason(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		skip   bool
	}{
		{name: "empty", record: Record{}, skip: true},
		{name: "categories only", record: Record{"Parent Category": "React", "Category": "Hooks"}, skip: true},
		{name: "question without type", record: Record{"Question": "Q"}, skip: false},
		{name: "type without question", record: Record{"Question Type": "matching"}, skip: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, skip := tt.record.SkipReason()
			if skip != tt.skip {
				t.Errorf("SkipReason() skip = %v, want %v", skip, tt.skip)
			}
			if skip && reason == "" {
				t.Error("a skipped record needs a reason")
			}
		})
	}
}

func TestLetters(t *testing.T) {
	letters := Letters()
	if len(letters) != MaxSlots {
		t.Fatalf("expected %d letters, got %d", MaxSlots, len(letters))
	}
	if letters[0] != "A" || letters[9] != "J" {
		t.Errorf("unexpected letters: %v", letters)
	}
}

func TestNumericAnswersRender(t *testing.T) {
	rec := Record{
		"Question Type": "multiplechoice",
		"Question":      "What is 2 - 2?",
		"Correct":       "B",
		"Answer A":      1.0,
		"Answer B":      0.0,
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	expected := "# Correct\n\n0\n\n# \n\n1\n\n"
	if md[len(md)-len(expected):] != expected {
		t.Errorf("numeric answers rendered wrong: %q", md)
	}
}
