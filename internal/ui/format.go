package ui

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/doniai/doniai-cli/internal/ui/components"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

var (
	htmlBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|pre|blockquote|tr|table|ul|ol)>`)
	htmlItemPattern  = regexp.MustCompile(`(?i)<li[^>]*>`)
	htmlRulePattern  = regexp.MustCompile(`(?i)<hr\s*/?>`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
)

// htmlToText flattens published post HTML into plain text for the terminal.
func htmlToText(s string) string {
	s = htmlRulePattern.ReplaceAllString(s, "\n────────\n")
	s = htmlItemPattern.ReplaceAllString(s, "• ")
	s = htmlBreakPattern.ReplaceAllString(s, "\n")
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = components.SanitizeText(s)
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// wrapText hard-wraps s to width, keeping existing line breaks.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}
