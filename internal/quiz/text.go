package quiz

import (
	"regexp"
	"strings"
)

var (
	codeSpanRe = regexp.MustCompile(`(?s)\[code\](.*?)\[/code\]`)
	boldRe     = regexp.MustCompile(`(?s)\[b\](.*?)\[/b\]`)
	imageRe    = regexp.MustCompile(`\[cmimg\]([^\r\n\x{2028}\x{2029}]*?)\[/cmimg\]`)

	// \s in RE2 lacks \v and U+FEFF
	whitespaceRe = regexp.MustCompile(`[\s\v\x{FEFF}\p{Z}]+`)
)

// CleanText rewrites bracketed pseudo-markup into Markdown:
// [code]x[/code] → fenced block, [b]x[/b] → **x**, [cmimg]u[/cmimg] → ![Image](u).
//
// Passes run in that order over the whole string. Fenced code is not
// protected from the later passes, so [b] inside [code] still becomes bold.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = codeSpanRe.ReplaceAllString(text, "```\n${1}\n```")
	text = boldRe.ReplaceAllString(text, "**${1}**")
	text = imageRe.ReplaceAllString(text, "![Image](${1})")

	return text
}

// FormatTag lowercases text and replaces every whitespace run with a hyphen
// Basics of React → basics-of-react
func FormatTag(text string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(text), "-")
}
