package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/quizmd/internal/render"
)

// Unified returns a unified diff turning oldContent into newContent, or
// "" when they are equal
func Unified(oldName, newName, oldContent, newContent string) string {
	if oldContent == newContent {
		return ""
	}

	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldContent, newContent)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldContent, edits))
}

// File diffs the file at path against freshly generated content. A missing
// file is treated as empty, so the diff shows the whole new document.
func File(path, generated string) (string, error) {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return Unified(name, name+" (generated)", string(existing), generated), nil
}

// Render wraps a unified diff in a diff code fence and renders it with
// Glamour for terminal output (+ in green, - in red)
func Render(unified string, width int) string {
	if unified == "" {
		return ""
	}
	return render.Markdown(fmt.Sprintf("```diff\n%s```\n", unified), width)
}
