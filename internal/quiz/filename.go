package quiz

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	slugLength      = 30
	unnamedQuestion = "unnamed-question"
)

var slugStripRe = regexp.MustCompile(`[^\w\s\v\x{FEFF}\p{Z}-]`)

// Filename derives the output file name for the record at the given
// zero-based position: question-<index+1>-<slug>.md
func Filename(rec Record, index int) string {
	return fmt.Sprintf("question-%d-%s.md", index+1, Slug(rec.Text(FieldQuestion)))
}

// Slug turns question text into a file name fragment. The text is cut to
// its first 30 characters before anything else, so the cut can land mid
// word. Trailing hyphens are kept.
func Slug(text string) string {
	if text == "" {
		text = unnamedQuestion
	}

	runes := []rune(text)
	if len(runes) > slugLength {
		runes = runes[:slugLength]
	}

	slug := strings.ToLower(string(runes))
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = whitespaceRe.ReplaceAllString(slug, "-")

	return slug
}
