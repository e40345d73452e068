package quiz

import (
	"errors"
	"fmt"
)

// ErrMissingField is matched by errors.Is for records lacking a field the
// renderer needs.
var ErrMissingField = errors.New("missing required field")

// InvalidRecordError reports a record that cannot be rendered. Index is
// the zero-based record position, or -1 when the caller did not supply one.
type InvalidRecordError struct {
	Index int
	Field string
	Type  string
}

func (e *InvalidRecordError) Error() string {
	msg := fmt.Sprintf("field %q is required for %s questions", e.Field, e.Type)
	if e.Index < 0 {
		return "invalid question record: " + msg
	}
	return fmt.Sprintf("invalid question record %d: %s", e.Index+1, msg)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrMissingField
}

func missingField(field, questionType string) error {
	return &InvalidRecordError{Index: -1, Field: field, Type: questionType}
}
