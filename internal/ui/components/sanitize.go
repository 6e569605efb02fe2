package components

import (
	"regexp"
	"strings"
	"unicode"
)

// terminalEscape matches CSI sequences and OSC strings, the two escape
// forms that can move the cursor, recolor or retitle the terminal.
var terminalEscape = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(\x07|\x1b\\))`)

// SanitizeText removes terminal escapes, control characters and bidi
// overrides from server-supplied text. Newlines and tabs survive.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	return strings.Map(keepPrintable, terminalEscape.ReplaceAllString(input, ""))
}

// SanitizeOneLine is SanitizeText with newlines and tabs turned into spaces.
func SanitizeOneLine(input string) string {
	if input == "" {
		return input
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return keepPrintable(r)
	}, terminalEscape.ReplaceAllString(input, ""))
}

func keepPrintable(r rune) rune {
	switch {
	case r == '\n' || r == '\t':
		return r
	case unicode.IsControl(r), unicode.Is(unicode.Bidi_Control, r):
		return -1
	}
	return r
}
