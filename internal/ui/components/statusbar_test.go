package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintShowsDescriptionAndKey(t *testing.T) {
	out := Hint("ctrl+s", "Publish")
	assert.Contains(t, out, "Publish")
	assert.Contains(t, out, "ctrl+s")
	assert.Less(t, strings.Index(out, "Publish"), strings.Index(out, "ctrl+s"))
}

func TestStatusBarWrapsWithinWidth(t *testing.T) {
	hints := []string{Hint("1-4", "Tabs"), Hint("?", "Help"), Hint("q", "Quit"), Hint("enter", "Open"), Hint("r", "Refresh")}

	wide := StatusBar(hints, 200)
	narrow := StatusBar(hints, 40)
	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
	for _, line := range strings.Split(narrow, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
	assert.Contains(t, narrow, "Refresh")
}

func TestStatusBarEmpty(t *testing.T) {
	assert.Equal(t, "", StatusBar(nil, 80))
}

func TestFlowPacksGreedily(t *testing.T) {
	rows := flow([]string{"aaa", "bbb", "cc", "dddddddd"}, 7)
	assert.Equal(t, []string{"aaabbb", "cc", "dddddddd"}, rows)
	assert.Equal(t, []string{"aaabbb"}, flow([]string{"aaa", "bbb"}, 0))
}
