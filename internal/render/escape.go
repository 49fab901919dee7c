package render

import (
	"html/template"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// EscapeHTML escapes user text for insertion into markup.
func EscapeHTML(s string) string {
	return template.HTMLEscapeString(s)
}

// SanitizeTerminal strips escape sequences and control characters other than
// newline and tab, so stored text cannot drive the terminal.
func SanitizeTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
