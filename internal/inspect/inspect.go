// Package inspect reads generated question documents back into their parts.
package inspect

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	correctHeading = "Correct"
	matchesHeading = "Matches"
	pairSeparator  = " -> "
)

// Answer is one answer block
type Answer struct {
	Correct bool
	Text    string
}

// Pair is one clue/match line of a matching question
type Pair struct {
	Clue  string
	Match string
}

// Document is a parsed question document
type Document struct {
	Difficulty int
	Tags       []string
	Question   string
	Answers    []Answer
	Pairs      []Pair
	Matching   bool // has a # Matches section
}

type frontMatterEnvelope struct {
	Difficulty int
	Tags       string
}

// headerFormat reads the "key: value" lines of a question header as plain
// text. Tags are written unquoted, so a tag such as [intro] or @scope is
// not valid YAML.
var headerFormat = frontmatter.NewFormat("---", "---", unmarshalHeader)

func unmarshalHeader(data []byte, v any) error {
	meta, ok := v.(*frontMatterEnvelope)
	if !ok {
		return fmt.Errorf("unsupported front matter target %T", v)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "difficulty":
			difficulty, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid difficulty %q: %w", value, err)
			}
			meta.Difficulty = difficulty
		case "tags":
			meta.Tags = value
		}
	}
	return nil
}

// Parse splits content into front matter, question text and answer blocks
func Parse(content []byte) (*Document, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.MustParse(bytes.NewReader(content), &meta, headerFormat)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	doc := &Document{
		Difficulty: meta.Difficulty,
		Tags:       strings.Fields(meta.Tags),
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var question []string
	var current *Answer
	inMatches := false
	seenHeading := false

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok && heading.Level == 1 {
			seenHeading = true
			title := blockText(heading, body)
			inMatches = title == matchesHeading
			current = nil
			if inMatches {
				doc.Matching = true
				continue
			}
			doc.Answers = append(doc.Answers, Answer{Correct: title == correctHeading})
			current = &doc.Answers[len(doc.Answers)-1]
			continue
		}

		content := blockText(node, body)
		switch {
		case !seenHeading:
			question = append(question, content)
		case inMatches:
			if clue, match, ok := strings.Cut(content, pairSeparator); ok {
				doc.Pairs = append(doc.Pairs, Pair{Clue: clue, Match: match})
			}
		case current != nil:
			if current.Text != "" {
				current.Text += "\n\n"
			}
			current.Text += content
		}
	}

	doc.Question = strings.Join(question, "\n\n")
	return doc, nil
}

// CorrectCount returns the number of # Correct blocks
func (d *Document) CorrectCount() int {
	count := 0
	for _, answer := range d.Answers {
		if answer.Correct {
			count++
		}
	}
	return count
}

// Summary describes the answer layout in a few words
func (d *Document) Summary() string {
	if d.Matching {
		return fmt.Sprintf("%d pairs", len(d.Pairs))
	}
	if len(d.Answers) == 0 {
		return "no answers"
	}
	return fmt.Sprintf("%d answers, %d correct", len(d.Answers), d.CorrectCount())
}

// blockText returns the raw source lines of a block and its child blocks
func blockText(node ast.Node, source []byte) string {
	var b strings.Builder

	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == ast.TypeBlock {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(blockText(child, source))
		}
	}

	return strings.TrimSpace(b.String())
}
