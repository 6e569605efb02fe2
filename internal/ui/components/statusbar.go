package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle lipgloss.Style
	keyCapStyle   lipgloss.Style
	segmentStyle  lipgloss.Style
)

// Hint renders one key binding, description first and the key as a cap.
func Hint(key, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// StatusBar lays hints out in as many centered rows as width requires.
func StatusBar(hints []string, width int) string {
	segments := make([]string, len(hints))
	for i, h := range hints {
		segments[i] = segmentStyle.Render(h)
	}
	rows := flow(segments, width-2)
	if len(rows) == 0 {
		return ""
	}
	if width <= 0 {
		return "  " + rows[0]
	}
	for i, row := range rows {
		rows[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	}
	return strings.Join(rows, "\n")
}

// flow packs segments left to right into rows no wider than width. A
// segment wider than width gets a row of its own. width <= 0 means one row.
func flow(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	var rows []string
	start, used := 0, 0
	for i, seg := range segments {
		w := lipgloss.Width(seg)
		if i > start && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, segments[start:i]...))
			start, used = i, 0
		}
		used += w
	}
	return append(rows, lipgloss.JoinHorizontal(lipgloss.Top, segments[start:]...))
}
