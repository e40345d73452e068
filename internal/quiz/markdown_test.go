package quiz

import (
	"errors"
	"strings"
	"testing"
)

func reactMultipleChoice() Record {
	return Record{
		"Question Type":   "multiplechoice",
		"Parent Category": "Basics of React",
		"Category":        "Basics",
		"Question":        "What is create-react-app?",
		"Correct":         "D",
		"Answer A":        "A compiler for Javascript code",
		"Answer B":        "A connection between front-end and back-end code",
		"Answer C":        "An auto-complete tool for React",
		"Answer D":        "A command-line interface to generate a project that can serve, compile, and build React apps",
	}
}

func TestToMarkdownMultipleChoice(t *testing.T) {
	md, err := ToMarkdown(reactMultipleChoice())
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	expected := "---\n" +
		"difficulty: 1\n" +
		"tags: basics-of-react basics\n" +
		"---\n\n" +
		"What is create-react-app?\n\n" +
		"# Correct\n\nA command-line interface to generate a project that can serve, compile, and build React apps\n\n" +
		"# \n\nA compiler for Javascript code\n\n" +
		"# \n\nA connection between front-end and back-end code\n\n" +
		"# \n\nAn auto-complete tool for React\n\n"

	if md != expected {
		t.Errorf("Markdown mismatch.\n\nExpected:\n%q\n\nGot:\n%q", expected, md)
	}
}

func TestToMarkdownMultipleResponse(t *testing.T) {
	rec := Record{
		"Question Type":   "multipleresponse",
		"Parent Category": "Basics of React",
		"Category":        "Components",
		"Question":        "Which of the following are React hooks?",
		"Correct":         "A,B,D",
		"Answer A":        "useState",
		"Answer B":        "useEffect",
		"Answer C":        "useAction",
		"Answer D":        "useContext",
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	expected := "---\ndifficulty: 1\ntags: basics-of-react components\n---\n\n" +
		"Which of the following are React hooks?\n\n" +
		"# Correct\n\nuseState\n\n" +
		"# Correct\n\nuseEffect\n\n" +
		"# Correct\n\nuseContext\n\n" +
		"# \n\nuseAction\n\n"

	if md != expected {
		t.Errorf("Markdown mismatch.\n\nExpected:\n%q\n\nGot:\n%q", expected, md)
	}
}

func TestToMarkdownMultipleResponseListOrder(t *testing.T) {
	rec := Record{
		"Question Type": "multipleresponse",
		"Question":      "Pick",
		"Correct":       "C,A",
		"Answer A":      "alpha",
		"Answer B":      "beta",
		"Answer C":      "gamma",
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	body := md[strings.Index(md, "Pick\n\n")+len("Pick\n\n"):]
	expected := "# Correct\n\ngamma\n\n# Correct\n\nalpha\n\n# \n\nbeta\n\n"
	if body != expected {
		t.Errorf("body = %q, want %q", body, expected)
	}
}

func TestToMarkdownMatching(t *testing.T) {
	rec := Record{
		"Question Type": "matching",
		"Question":      "Match the hooks",
		"A Clue":        "useState",
		"A Match":       "local state",
		"B Clue":        "useEffect",
		"C Clue":        "useRef",
		"C Match":       "[b]mutable[/b] box",
		"D Match":       "orphan match",
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	expected := "---\ndifficulty: 1\ntags: \n---\n\n" +
		"Match the hooks\n\n" +
		"# Matches\n\n" +
		"useState -> local state\n\n" +
		"useRef -> **mutable** box\n\n"

	if md != expected {
		t.Errorf("Markdown mismatch.\n\nExpected:\n%q\n\nGot:\n%q", expected, md)
	}
}

func TestToMarkdownUnknownType(t *testing.T) {
	tests := []struct {
		name         string
		questionType any
	}{
		{name: "unknown", questionType: "truefalse"},
		{name: "wrong case", questionType: "MultipleChoice"},
		{name: "missing", questionType: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{
				"Question Type": tt.questionType,
				"Question":      "Is Go fun?",
				"Answer A":      "yes",
			}

			md, err := ToMarkdown(rec)
			if err != nil {
				t.Fatalf("ToMarkdown failed: %v", err)
			}

			expected := "---\ndifficulty: 1\ntags: \n---\n\nIs Go fun?\n\n"
			if md != expected {
				t.Errorf("got %q, want header only %q", md, expected)
			}
		})
	}
}

func TestToMarkdownMissingAnswerSlot(t *testing.T) {
	rec := Record{
		"Question Type": "multiplechoice",
		"Question":      "Q",
		"Correct":       "A",
		"Answer A":      "first",
		"Answer B":      "second",
		"Answer C":      "   ",
		"Answer D":      "fourth",
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	if strings.Contains(md, "# \n\n\n\n") {
		t.Errorf("empty answer block emitted:\n%q", md)
	}
	if got := strings.Count(md, "# \n\n"); got != 2 {
		t.Errorf("expected 2 incorrect blocks, got %d", got)
	}
}

func TestToMarkdownCorrectAnswerAbsent(t *testing.T) {
	rec := Record{
		"Question Type": "multiplechoice",
		"Question":      "Q",
		"Correct":       "E",
		"Answer A":      "first",
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	if !strings.Contains(md, "Q\n\n# Correct\n\n\n\n# \n\nfirst\n\n") {
		t.Errorf("expected empty correct block followed by A, got %q", md)
	}
}

func TestToMarkdownMissingCorrect(t *testing.T) {
	for _, questionType := range []string{TypeMultipleChoice, TypeMultipleResponse} {
		t.Run(questionType, func(t *testing.T) {
			rec := Record{
				"Question Type": questionType,
				"Question":      "Q",
				"Correct":       "",
				"Answer A":      "first",
			}

			_, err := ToMarkdown(rec)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}

			var invalid *InvalidRecordError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidRecordError, got %T", err)
			}
			if invalid.Field != FieldCorrect {
				t.Errorf("Field = %q, want %q", invalid.Field, FieldCorrect)
			}
			if invalid.Type != questionType {
				t.Errorf("Type = %q, want %q", invalid.Type, questionType)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	doc, err := Convert(reactMultipleChoice(), 4)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if doc.Filename != "question-5-what-is-create-react-app.md" {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if !strings.HasPrefix(doc.Content, "---\ndifficulty: 1\n") {
		t.Errorf("Content missing front matter: %q", doc.Content)
	}
}

func TestConvertErrorCarriesIndex(t *testing.T) {
	rec := Record{"Question Type": "multiplechoice", "Question": "Q"}

	_, err := Convert(rec, 6)

	var invalid *InvalidRecordError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidRecordError, got %v", err)
	}
	if invalid.Index != 6 {
		t.Errorf("Index = %d, want 6", invalid.Index)
	}
	if !strings.Contains(err.Error(), "record 7") {
		t.Errorf("error should name 1-based position: %v", err)
	}
}

func TestMultipleChoiceEveryLetterOnce(t *testing.T) {
	rec := Record{"Question Type": "multiplechoice", "Question": "Q", "Correct": "C"}
	for _, letter := range Letters() {
		rec[AnswerField(letter)] = "answer-" + letter
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}

	if got := strings.Count(md, "# Correct"); got != 1 {
		t.Errorf("expected one correct block, got %d", got)
	}
	if !strings.Contains(md, "# Correct\n\nanswer-C\n\n") {
		t.Errorf("first block should hold answer C: %q", md)
	}
	for _, letter := range Letters() {
		if got := strings.Count(md, "answer-"+letter+"\n"); got != 1 {
			t.Errorf("answer %s appears %d times", letter, got)
		}
	}
}

func TestEleventhSlotIgnored(t *testing.T) {
	rec := Record{
		"Question Type": "multiplechoice",
		"Question":      "Q",
		"Correct":       "A",
		"Answer A":      "first",
		"Answer K":      "eleventh",
	}

	md, err := ToMarkdown(rec)
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if strings.Contains(md, "eleventh") {
		t.Errorf("slot K must never be rendered: %q", md)
	}
}

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected []string
	}{
		{
			name:     "both categories",
			record:   Record{"Parent Category": "Basics of React", "Category": "Hooks  and\tState"},
			expected: []string{"basics-of-react", "hooks-and-state"},
		},
		{
			name:     "category only",
			record:   Record{"Category": "Components"},
			expected: []string{"components"},
		},
		{
			name:     "blank parent",
			record:   Record{"Parent Category": "  ", "Category": "Components"},
			expected: []string{"components"},
		},
		{
			name:     "duplicates kept",
			record:   Record{"Parent Category": "React", "Category": "react"},
			expected: []string{"react", "react"},
		},
		{
			name:     "none",
			record:   Record{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ExtractMetadata(tt.record)
			if meta.Difficulty != 1 {
				t.Errorf("Difficulty = %d, want 1", meta.Difficulty)
			}
			if strings.Join(meta.Tags, " ") != strings.Join(tt.expected, " ") || len(meta.Tags) != len(tt.expected) {
				t.Errorf("Tags = %q, want %q", meta.Tags, tt.expected)
			}
		})
	}
}

func TestTagLineHasNoSeparatorArtifacts(t *testing.T) {
	md, err := ToMarkdown(Record{"Category": "Only One", "Question": "Q"})
	if err != nil {
		t.Fatalf("ToMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "\ntags: only-one\n") {
		t.Errorf("unexpected tag line in %q", md)
	}
}
