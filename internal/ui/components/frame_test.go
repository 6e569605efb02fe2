package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func TestFrameWidth(t *testing.T) {
	tests := []struct {
		term, want int
	}{
		{0, 0},
		{30, 30},
		{50, 40},
		{100, 70},
		{200, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, frameWidth(tt.term), "term %d", tt.term)
	}
	assert.Equal(t, 64, BoxContentWidth(100))
	assert.Equal(t, 0, BoxContentWidth(0))
}

func TestClampTextWidthCountsWideRunes(t *testing.T) {
	assert.Equal(t, "hello", ClampTextWidth("hello", 10))
	assert.Equal(t, "hel", ClampTextWidth("hello", 3))
	assert.Equal(t, "你好", ClampTextWidth("你好世界", 5))
	assert.Equal(t, "a b", ClampTextWidth("a\nb", 10))
	assert.Equal(t, "raw\n", ClampTextWidth("raw\n", 0))
}

func TestTitledBoxCarriesTitleInBorder(t *testing.T) {
	out := TitledBox("Feed", "body", 100)
	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "[ Feed ]")
	assert.Contains(t, out, "body")
	// border sits outside the frame width
	assert.Equal(t, 72, maxLineWidth(out))
}

func TestTitledBoxWithoutTitle(t *testing.T) {
	out := TitledBox("", "body", 100)
	assert.NotContains(t, out, "[")
	assert.Contains(t, out, "body")
}

func TestTitledBoxTruncatesLongTitle(t *testing.T) {
	out := TitledBox(strings.Repeat("x", 200), "body", 50)
	assert.Equal(t, 42, maxLineWidth(out))
}

func TestPaneBoxHasExactWidth(t *testing.T) {
	for _, active := range []bool{false, true} {
		out := PaneBox("Preview", "some text", 33, active)
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, 33, lipgloss.Width(line))
		}
	}
}

func TestErrorBoxIncludesTitleAndMessage(t *testing.T) {
	out := ErrorBox("Error", "server unreachable", 100)
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "server unreachable")
}

func TestInfoRowSanitizes(t *testing.T) {
	out := InfoRow("Na\x1b[31mme", "ann\nsmith")
	assert.Contains(t, out, "Name: ")
	assert.Contains(t, out, "ann smith")
}

func TestKeyValuesAlignsAndClamps(t *testing.T) {
	out := KeyValues([]TableRow{
		{Label: "Title", Value: strings.Repeat("long ", 20)},
		{Label: "Tags", Value: "go, tui"},
	}, 30)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Tags   go, tui"))
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb", 2))
}
