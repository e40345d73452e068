package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty is written to every document's front matter.
const Difficulty = 1

// Metadata is the front matter derived from a record.
type Metadata struct {
	Difficulty int
	Tags       []string
}

// Document is a rendered question ready to be written verbatim.
type Document struct {
	Filename string
	Content  string
}

// ExtractMetadata derives tags from Parent Category then Category.
// Tags are not deduplicated.
func ExtractMetadata(rec Record) Metadata {
	meta := Metadata{Difficulty: Difficulty, Tags: []string{}}

	if parent, ok := rec.Field(FieldParentCategory); ok {
		meta.Tags = append(meta.Tags, FormatTag(parent))
	}
	if category, ok := rec.Field(FieldCategory); ok {
		meta.Tags = append(meta.Tags, FormatTag(category))
	}

	return meta
}

// ToMarkdown renders a record as a Markdown document. Records with a
// missing or unknown Question Type yield the header and question only.
func ToMarkdown(rec Record) (string, error) {
	var md strings.Builder

	meta := ExtractMetadata(rec)
	md.WriteString("---\n")
	fmt.Fprintf(&md, "difficulty: %d\n", meta.Difficulty)
	fmt.Fprintf(&md, "tags: %s\n", strings.Join(meta.Tags, " "))
	md.WriteString("---\n\n")

	md.WriteString(CleanText(rec.Text(FieldQuestion)))
	md.WriteString("\n\n")

	var err error
	switch questionType, _ := rec.Field(FieldQuestionType); questionType {
	case TypeMultipleChoice:
		err = writeMultipleChoice(&md, rec)
	case TypeMultipleResponse:
		err = writeMultipleResponse(&md, rec)
	case TypeMatching:
		writeMatching(&md, rec)
	}
	if err != nil {
		return "", err
	}

	return md.String(), nil
}

// Convert renders the record at the given zero-based position and derives
// its file name. Errors carry the position.
func Convert(rec Record, index int) (Document, error) {
	content, err := ToMarkdown(rec)
	if err != nil {
		var invalid *InvalidRecordError
		if errors.As(err, &invalid) {
			invalid.Index = index
		}
		return Document{}, err
	}

	return Document{
		Filename: Filename(rec, index),
		Content:  content,
	}, nil
}

// IsKnownType reports whether questionType has a renderer.
func IsKnownType(questionType string) bool {
	switch questionType {
	case TypeMultipleChoice, TypeMultipleResponse, TypeMatching:
		return true
	}
	return false
}

func writeCorrect(md *strings.Builder, text string) {
	md.WriteString("# Correct\n\n")
	md.WriteString(CleanText(text))
	md.WriteString("\n\n")
}

func writeIncorrect(md *strings.Builder, text string) {
	md.WriteString("# \n\n")
	md.WriteString(CleanText(text))
	md.WriteString("\n\n")
}

// writeMultipleChoice emits the single correct answer first, then every
// other populated answer in letter order. A correct letter without an
// answer still gets an empty # Correct block.
func writeMultipleChoice(md *strings.Builder, rec Record) error {
	correct, ok := rec.Field(FieldCorrect)
	if !ok {
		return missingField(FieldCorrect, TypeMultipleChoice)
	}

	writeCorrect(md, rec.Text(AnswerField(correct)))

	for _, answer := range scanSlots(rec, AnswerField) {
		if answer.Letter != correct {
			writeIncorrect(md, answer.Value)
		}
	}

	return nil
}

// writeMultipleResponse emits one # Correct block per comma separated
// letter in Correct, in the listed order, then the remaining populated
// answers in letter order. Letters are not trimmed.
func writeMultipleResponse(md *strings.Builder, rec Record) error {
	correct, ok := rec.Field(FieldCorrect)
	if !ok {
		return missingField(FieldCorrect, TypeMultipleResponse)
	}

	letters := strings.Split(correct, ",")
	isCorrect := make(map[string]bool, len(letters))
	for _, letter := range letters {
		isCorrect[letter] = true
		writeCorrect(md, rec.Text(AnswerField(letter)))
	}

	for _, answer := range scanSlots(rec, AnswerField) {
		if !isCorrect[answer.Letter] {
			writeIncorrect(md, answer.Value)
		}
	}

	return nil
}

// writeMatching emits "clue -> match" for every letter that has both.
func writeMatching(md *strings.Builder, rec Record) {
	md.WriteString("# Matches\n\n")

	for _, clue := range scanSlots(rec, ClueField) {
		match, ok := rec.Field(MatchField(clue.Letter))
		if !ok {
			continue
		}
		fmt.Fprintf(md, "%s -> %s\n\n", CleanText(clue.Value), CleanText(match))
	}
}
