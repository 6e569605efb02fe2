package components

import "github.com/charmbracelet/lipgloss"

var (
	chipStyle       lipgloss.Style
	chipActiveStyle lipgloss.Style
)

// Chips renders labels as removable chips, wrapping to width. active is the
// index drawn highlighted, or -1.
func Chips(labels []string, active, width int) string {
	if len(labels) == 0 {
		return ""
	}
	segments := make([]string, 0, len(labels))
	for i, l := range labels {
		style := chipStyle
		if i == active {
			style = chipActiveStyle
		}
		segments = append(segments, style.Render(SanitizeOneLine(l)+" ×"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, flow(segments, width)...)
}
