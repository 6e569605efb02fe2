package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui/components"
)

func listItems(l *components.List) []string {
	_, items := l.Window()
	return items
}

func testClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, "test-session")
}

func testStore(t *testing.T) *store.DB {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// typeText feeds s one rune at a time, the way a terminal delivers it.
func typeText[M interface {
	Update(tea.Msg) (M, tea.Cmd)
}](m M, s string) M {
	for _, r := range s {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		m, _ = m.Update(msg)
	}
	return m
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func samplePosts() []api.Post {
	return []api.Post{
		{ID: 1, Title: "Oldest", Author: "ann", CategoryID: 1, Category: "Go", Likes: 9, CreatedAt: baseTime},
		{ID: 2, Title: "Middle", Author: "bob", CategoryID: 1, Category: "Go", Favorites: 4, CreatedAt: baseTime.Add(time.Hour)},
		{ID: 3, Title: "Newest", Author: "cy", CategoryID: 2, Category: "Rust", Tags: `["tui","markdown"]`, CreatedAt: baseTime.Add(2 * time.Hour)},
		{ID: 4, Title: "Uncategorized", Author: "dee", CreatedAt: baseTime.Add(3 * time.Hour)},
	}
}

func TestCenterLinesCentersEachLine(t *testing.T) {
	lines := strings.Split(centerLines("hi\nworld", 10), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "    hi", lines[0])
	assert.Equal(t, "  world", lines[1])
}

func TestCenterHelpersLeaveWideInputUnchanged(t *testing.T) {
	in := "0123456789"
	assert.Equal(t, in, centerLines(in, 5))
	assert.Equal(t, in, centerLines(in, 0))
	assert.Equal(t, in, centerBlock(in, 5))
	assert.Equal(t, in, centerBlock(in, 0))
}

func TestCenterBlockKeepsRelativeIndent(t *testing.T) {
	lines := strings.Split(centerBlock("ab\n  cd", 10), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "   ab", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "     cd", lines[1])
}

func TestBatchCmdsDropsNil(t *testing.T) {
	assert.Nil(t, batchCmds(nil, nil))

	one := func() tea.Msg { return clearToastMsg{} }
	cmd := batchCmds(nil, one)
	require.NotNil(t, cmd)
	assert.IsType(t, clearToastMsg{}, cmd())
}
