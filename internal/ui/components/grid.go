package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Column describes one Grid column. Width is in display cells. The Flex
// column, or the last one when none is marked, absorbs the space the
// others leave.
type Column struct {
	Header string
	Width  int
	Align  lipgloss.Position
	Flex   bool
}

const gridIndent = 2

var (
	gridRuleStyle      lipgloss.Style
	gridActiveRowStyle lipgloss.Style
	gridActiveSepStyle lipgloss.Style
)

// Grid lays rows out under a header and a rule, every line exactly width
// cells wide. Row active is highlighted; pass -1 for none.
func Grid(columns []Column, rows [][]string, width, active int) string {
	if width <= 0 || len(columns) == 0 {
		return ""
	}
	cols := fitColumns(columns, width)
	border := lipgloss.RoundedBorder()

	lines := make([]string, 0, len(rows)+2)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	lines = append(lines, gridLine(cols, headers, width, labelTextStyle, gridRuleStyle))

	rule := make([]string, len(cols))
	for i, c := range cols {
		rule[i] = strings.Repeat(border.Top, c.Width)
	}
	lines = append(lines, gridRuleStyle.Render(runewidth.FillRight(
		strings.Repeat(" ", gridIndent)+strings.Join(rule, border.Middle), width)))

	for i, row := range rows {
		cellStyle, sepStyle := lipgloss.NewStyle(), gridRuleStyle
		if i == active {
			cellStyle, sepStyle = gridActiveRowStyle, gridActiveSepStyle
		}
		lines = append(lines, gridLine(cols, row, width, cellStyle, sepStyle))
	}
	return strings.Join(lines, "\n")
}

func fitColumns(columns []Column, width int) []Column {
	cols := make([]Column, len(columns))
	copy(cols, columns)

	flex := len(cols) - 1
	used := gridIndent + len(cols) - 1
	for i := range cols {
		cols[i].Width = max(cols[i].Width, 1)
		used += cols[i].Width
		if cols[i].Flex {
			flex = i
		}
	}
	cols[flex].Width = max(cols[flex].Width+width-used, 1)
	return cols
}

func gridLine(cols []Column, cells []string, width int, cellStyle, sepStyle lipgloss.Style) string {
	sep := sepStyle.Render(lipgloss.RoundedBorder().Left)
	parts := make([]string, len(cols))
	for i, c := range cols {
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		parts[i] = cellStyle.Render(alignCell(ClampTextWidth(text, c.Width), c.Width, c.Align))
	}
	line := strings.Repeat(" ", gridIndent) + strings.Join(parts, sep)
	if w := lipgloss.Width(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

func alignCell(text string, width int, align lipgloss.Position) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", gap) + text
	case lipgloss.Center:
		return strings.Repeat(" ", gap/2) + text + strings.Repeat(" ", gap-gap/2)
	}
	return text + strings.Repeat(" ", gap)
}
