package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// navKeys are the bindings every screen shares.
var navKeys = struct {
	Quit, Back, Up, Down, Enter, Space, Top, Bottom, NextField, PrevField key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Back:      key.NewBinding(key.WithKeys("esc", "ctrl+[")),
	Up:        key.NewBinding(key.WithKeys("up")),
	Down:      key.NewBinding(key.WithKeys("down")),
	Enter:     key.NewBinding(key.WithKeys("enter")),
	Space:     key.NewBinding(key.WithKeys(" ")),
	Top:       key.NewBinding(key.WithKeys("g", "home")),
	Bottom:    key.NewBinding(key.WithKeys("G", "end")),
	NextField: key.NewBinding(key.WithKeys("tab")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab")),
}

// isKey matches msg against ad-hoc key names, for one-off shortcuts.
func isKey(msg tea.KeyMsg, keys ...string) bool {
	return key.Matches(msg, key.NewBinding(key.WithKeys(keys...)))
}

func isQuit(msg tea.KeyMsg) bool      { return key.Matches(msg, navKeys.Quit) }
func isBack(msg tea.KeyMsg) bool      { return msg.Type == tea.KeyEsc || key.Matches(msg, navKeys.Back) }
func isUp(msg tea.KeyMsg) bool        { return key.Matches(msg, navKeys.Up) }
func isDown(msg tea.KeyMsg) bool      { return key.Matches(msg, navKeys.Down) }
func isEnter(msg tea.KeyMsg) bool     { return key.Matches(msg, navKeys.Enter) }
func isSpace(msg tea.KeyMsg) bool     { return key.Matches(msg, navKeys.Space) }
func isTop(msg tea.KeyMsg) bool       { return key.Matches(msg, navKeys.Top) }
func isBottom(msg tea.KeyMsg) bool    { return key.Matches(msg, navKeys.Bottom) }
func isNextField(msg tea.KeyMsg) bool { return key.Matches(msg, navKeys.NextField) }
func isPrevField(msg tea.KeyMsg) bool { return key.Matches(msg, navKeys.PrevField) }

// isTab matches the digit that jumps straight to top-level tab n.
func isTab(msg tea.KeyMsg, n int) bool {
	return n >= 1 && n <= 9 && isKey(msg, strconv.Itoa(n))
}
