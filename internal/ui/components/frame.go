package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Boxes take 70% of the terminal, clamped to [40, 80] columns and never
// wider than the terminal itself.
const (
	frameMinWidth = 40
	frameMaxWidth = 80
	framePercent  = 70

	// rounded border plus Padding(1, 2)
	frameChrome = 6
)

var (
	frameStyle       lipgloss.Style
	frameActiveStyle lipgloss.Style
	frameTitleStyle  lipgloss.Style
	mutedTextStyle   lipgloss.Style
	valueTextStyle   lipgloss.Style
	labelTextStyle   lipgloss.Style
	errorFrameStyle  lipgloss.Style
	errorTitleStyle  lipgloss.Style
	errorTextStyle   lipgloss.Style
)

func frameWidth(term int) int {
	if term <= 0 {
		return 0
	}
	w := min(max(term*framePercent/100, frameMinWidth), frameMaxWidth)
	return min(w, term)
}

// BoxContentWidth is the text width inside a box drawn for a terminal of
// the given width.
func BoxContentWidth(term int) int {
	return max(frameWidth(term)-frameChrome, 0)
}

// ClampTextWidth folds text onto one line and cuts it to width display
// cells. Wide runes count as two cells. width <= 0 returns text unchanged.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(SanitizeOneLine(text), width, "")
}

// TitledBox frames content and writes title into the top border.
func TitledBox(title, content string, term int) string {
	boxed := frameStyle.Width(frameWidth(term)).Render(content)
	return withTitle(boxed, title, frameTitleStyle, current.Border)
}

// ErrorBox frames message in the error colors.
func ErrorBox(title, message string, term int) string {
	body := errorTextStyle.Render(message)
	if title != "" {
		body = errorTitleStyle.Render(title) + "\n\n" + body
	}
	return errorFrameStyle.Width(frameWidth(term)).Render(body)
}

// PaneBox is TitledBox with an exact outer width, for panes laid side by
// side. active draws the accent border.
func PaneBox(title, content string, width int, active bool) string {
	style, edge := frameStyle, current.Border
	if active {
		style, edge = frameActiveStyle, current.Accent
	}
	inner := max(width-style.GetHorizontalBorderSize(), 1)
	return withTitle(style.Width(inner).Render(content), title, frameTitleStyle, edge)
}

// withTitle replaces the top border of boxed with one carrying
// " [ title ] " in the middle.
func withTitle(boxed, title string, titleStyle lipgloss.Style, edge lipgloss.Color) string {
	if title == "" {
		return boxed
	}
	top, rest, found := strings.Cut(boxed, "\n")
	width := lipgloss.Width(top)
	if !found || width < 4 {
		return boxed
	}

	label := runewidth.Truncate(" [ "+SanitizeOneLine(title)+" ] ", width-2, "")
	fill := width - 2 - runewidth.StringWidth(label)
	left := fill / 2

	b := lipgloss.RoundedBorder()
	edgeStyle := lipgloss.NewStyle().Foreground(edge)
	top = edgeStyle.Render(b.TopLeft+strings.Repeat(b.Top, left)) +
		titleStyle.Render(label) +
		edgeStyle.Render(strings.Repeat(b.Top, fill-left)+b.TopRight)
	return top + "\n" + rest
}

// InfoRow renders "label: value" for detail views.
func InfoRow(label, value string) string {
	return mutedTextStyle.Render(SanitizeOneLine(label)+": ") + valueTextStyle.Render(SanitizeOneLine(value))
}

// TableRow is one label/value pair of a summary.
type TableRow struct {
	Label string
	Value string
}

// KeyValues aligns rows into two columns that fit in width cells. Labels
// get at most a third of the width.
func KeyValues(rows []TableRow, width int) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(SanitizeOneLine(r.Label)))
	}
	if width > 0 {
		labelWidth = min(labelWidth, max(width/3, 4))
	}
	valueWidth := 0
	if width > 0 {
		valueWidth = max(width-labelWidth-2, 4)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := runewidth.FillRight(ClampTextWidth(r.Label, labelWidth), labelWidth)
		value := SanitizeOneLine(r.Value)
		if valueWidth > 0 {
			value = ClampTextWidth(value, valueWidth)
		}
		lines = append(lines, labelTextStyle.Render(label)+"  "+valueTextStyle.Render(value))
	}
	return strings.Join(lines, "\n")
}

// Indent prefixes every line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
