package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Recognized record fields
const (
	FieldQuestionType   = "Question Type"
	FieldParentCategory = "Parent Category"
	FieldCategory       = "Category"
	FieldQuestion       = "Question"
	FieldCorrect        = "Correct"

	// FieldExtraCells holds the cells of a CSV row that had no header,
	// under the key PapaParse uses for them.
	FieldExtraCells = "__parsed_extra"
)

// Question types understood by the renderer. Matching is case-sensitive.
const (
	TypeMultipleChoice   = "multiplechoice"
	TypeMultipleResponse = "multipleresponse"
	TypeMatching         = "matching"
)

// MaxSlots is the number of answer letters (A through J) ever considered.
const MaxSlots = 10

// Record is one parsed question row keyed by header name. Values are
// strings, numbers, bools or nil, as produced by the record sources.
type Record map[string]any

// Field returns the value stored under name and whether it is present.
// A missing key, a nil value, or a string that is blank after trimming
// all count as absent. Present strings are returned as stored.
func (r Record) Field(name string) (string, bool) {
	raw, ok := r[name]
	if !ok || raw == nil {
		return "", false
	}

	var value string
	switch v := raw.(type) {
	case string:
		value = v
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		value = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		value = strconv.Itoa(v)
	case int64:
		value = strconv.FormatInt(v, 10)
	case json.Number:
		value = v.String()
	case bool:
		value = strconv.FormatBool(v)
	default:
		value = fmt.Sprint(v)
	}

	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// Text returns the field value, or "" when it is absent.
func (r Record) Text(name string) string {
	value, _ := r.Field(name)
	return value
}

// IsBlank reports whether every field of the record is absent.
func (r Record) IsBlank() bool {
	for name := range r {
		if _, ok := r.Field(name); ok {
			return false
		}
	}
	return true
}

// ExtraCells returns how many cells past the header the source row had.
func (r Record) ExtraCells() int {
	switch extra := r[FieldExtraCells].(type) {
	case []string:
		return len(extra)
	case []any:
		return len(extra)
	default:
		return 0
	}
}

// SkipReason reports whether the record carries no question at all and
// should be left out of a batch instead of failing it.
func (r Record) SkipReason() (string, bool) {
	if r.IsBlank() {
		return "empty row", true
	}
	_, hasType := r.Field(FieldQuestionType)
	_, hasQuestion := r.Field(FieldQuestion)
	if !hasType && !hasQuestion {
		return "no question type or question text", true
	}
	return "", false
}

// Letter returns the answer letter for a zero-based slot ordinal.
func Letter(ordinal int) string {
	return string(rune('A' + ordinal))
}

// Letters returns the answer letters A through J in order.
func Letters() []string {
	letters := make([]string, MaxSlots)
	for i := range letters {
		letters[i] = Letter(i)
	}
	return letters
}

// AnswerField returns "Answer <letter>".
func AnswerField(letter string) string {
	return "Answer " + letter
}

// ClueField returns "<letter> Clue".
func ClueField(letter string) string {
	return letter + " Clue"
}

// MatchField returns "<letter> Match".
func MatchField(letter string) string {
	return letter + " Match"
}

// slot is a populated field belonging to one answer letter.
type slot struct {
	Letter string
	Value  string
}

// scanSlots walks letters A..J and collects every populated field named
// by field(letter), in letter order.
func scanSlots(rec Record, field func(letter string) string) []slot {
	var slots []slot
	for i := 0; i < MaxSlots; i++ {
		letter := Letter(i)
		if value, ok := rec.Field(field(letter)); ok {
			slots = append(slots, slot{Letter: letter, Value: value})
		}
	}
	return slots
}
