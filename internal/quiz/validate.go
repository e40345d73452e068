package quiz

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Severity grades a validation issue.
type Severity int

const (
	// SeverityWarning marks data that renders but probably not as intended.
	SeverityWarning Severity = iota
	// SeverityError marks data that cannot be rendered.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue captures a validation problem in a question record.
type Issue struct {
	Field    string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationError reports the issues found in one record.
type ValidationError struct {
	Index  int
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("question %d failed validation: %s", err.Index+1, strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) addWarning(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Severity: SeverityWarning, Message: message})
}

// addRuleErrors records the per-field errors of a rule run, in the given
// field order.
func (collector *issueCollector) addRuleErrors(severity Severity, err error, fields ...string) {
	if err == nil {
		return
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		collector.issues = append(collector.issues, Issue{Field: "record", Severity: severity, Message: err.Error()})
		return
	}
	for _, field := range fields {
		if fieldErr, ok := fieldErrs[field]; ok && fieldErr != nil {
			collector.issues = append(collector.issues, Issue{Field: field, Severity: severity, Message: fieldErr.Error()})
		}
	}
}

// slotLetters holds A..J for validation.In.
var slotLetters = func() []any {
	letters := make([]any, 0, MaxSlots)
	for _, letter := range Letters() {
		letters = append(letters, letter)
	}
	return letters
}()

// requiredFields checks the fields the renderer cannot do without.
// Values go through Record.Field first, so blank text counts as missing.
func requiredFields(rec Record, questionType string) error {
	values := map[string]any{
		FieldQuestion: rec.Text(FieldQuestion),
		FieldCorrect:  rec.Text(FieldCorrect),
	}

	rules := []*validation.KeyRules{
		validation.Key(FieldQuestion, validation.Required.Error("is required")),
	}
	if questionType == TypeMultipleChoice || questionType == TypeMultipleResponse {
		rules = append(rules, validation.Key(FieldCorrect,
			validation.Required.Error(fmt.Sprintf("is required for %s questions", questionType))))
	}

	return validation.Validate(values, validation.Map(rules...).AllowExtraKeys())
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a record against what the renderer expects. It never
// changes what ToMarkdown produces; records with only warnings still
// render.
func Validate(rec Record) []Issue {
	collector := &issueCollector{}

	questionType, ok := rec.Field(FieldQuestionType)
	collector.addRuleErrors(SeverityError, requiredFields(rec, questionType), FieldQuestion, FieldCorrect)

	switch {
	case !ok:
		collector.addWarning(FieldQuestionType, "is missing; document will have no answers")
	case !IsKnownType(questionType):
		collector.addWarning(FieldQuestionType, fmt.Sprintf("unknown type %q; document will have no answers", questionType))
	case questionType == TypeMultipleChoice:
		validateMultipleChoice(rec, collector)
	case questionType == TypeMultipleResponse:
		validateMultipleResponse(rec, collector)
	case questionType == TypeMatching:
		validateMatching(rec, collector)
	}

	validateOverflow(rec, collector)
	validateExtraCells(rec, collector)

	return collector.issues
}

func validateMultipleChoice(rec Record, collector *issueCollector) {
	answers := scanSlots(rec, AnswerField)
	if len(answers) == 0 {
		collector.addWarning("Answer A", "no answers are populated")
	}

	// A missing Correct is reported by requiredFields
	if correct, ok := rec.Field(FieldCorrect); ok {
		validateCorrectLetter(rec, correct, collector)
	}
}

func validateMultipleResponse(rec Record, collector *issueCollector) {
	answers := scanSlots(rec, AnswerField)
	if len(answers) == 0 {
		collector.addWarning("Answer A", "no answers are populated")
	}

	correct, ok := rec.Field(FieldCorrect)
	if !ok {
		return
	}

	seen := map[string]bool{}
	for _, letter := range strings.Split(correct, ",") {
		if seen[letter] {
			collector.addWarning(FieldCorrect, fmt.Sprintf("letter %q is listed more than once", letter))
			continue
		}
		seen[letter] = true
		validateCorrectLetter(rec, letter, collector)
	}
}

func validateCorrectLetter(rec Record, letter string, collector *issueCollector) {
	notSlot := fmt.Sprintf("%q is not a letter between A and J", letter)
	if err := validation.Validate(letter,
		validation.Required.Error(notSlot),
		validation.In(slotLetters...).Error(notSlot),
	); err != nil {
		collector.addWarning(FieldCorrect, err.Error())
		return
	}
	if _, ok := rec.Field(AnswerField(letter)); !ok {
		collector.addWarning(FieldCorrect, fmt.Sprintf("points at %q which is empty", AnswerField(letter)))
	}
}

func validateMatching(rec Record, collector *issueCollector) {
	pairs := 0
	for _, letter := range Letters() {
		_, hasClue := rec.Field(ClueField(letter))
		_, hasMatch := rec.Field(MatchField(letter))
		switch {
		case hasClue && hasMatch:
			pairs++
		case hasClue:
			collector.addWarning(MatchField(letter), "is empty; clue will be skipped")
		case hasMatch:
			collector.addWarning(ClueField(letter), "is empty; match will be skipped")
		}
	}
	if pairs == 0 {
		collector.addWarning("A Clue", "no complete clue/match pairs")
	}
}

// validateOverflow flags populated slots past J, which are never rendered.
func validateOverflow(rec Record, collector *issueCollector) {
	for ordinal := MaxSlots; ordinal < 26; ordinal++ {
		letter := Letter(ordinal)
		for _, field := range []string{AnswerField(letter), ClueField(letter), MatchField(letter)} {
			if _, ok := rec.Field(field); ok {
				collector.addWarning(field, "is beyond the 10 supported slots and is ignored")
			}
		}
	}
}

// validateExtraCells flags rows that had more cells than the header.
func validateExtraCells(rec Record, collector *issueCollector) {
	if n := rec.ExtraCells(); n > 0 {
		collector.addWarning(FieldExtraCells, fmt.Sprintf("row has %d more cell(s) than the header; columns may be shifted", n))
	}
}
