package parser

import (
	"regexp"
	"strings"
)

var (
	blankLines   = regexp.MustCompile(`\n\s*\n+`)
	inlineSpaces = regexp.MustCompile(`[ \t]+`)
)

// TextParser cleans and normalizes raw loader output before chunking.
// The cleanup is purely textual, not semantic.
type TextParser struct{}

// NewTextParser creates a new TextParser.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse normalizes line endings to LF, collapses runs of blank lines into a
// single blank line, squeezes repeated spaces and tabs, and trims
// leading/trailing whitespace.
func (p *TextParser) Parse(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	text = inlineSpaces.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
