package ui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchClientCounting(t *testing.T, calls *int) SearchModel {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		*calls++
		writeJSON(w, map[string]any{"posts": samplePosts()})
	})
	return NewSearchModel(client)
}

func TestSearchTypingQueriesTitles(t *testing.T) {
	calls := 0
	model := searchClientCounting(t, &calls)

	model, cmd := model.Update(runes("e"))
	require.NotNil(t, cmd)
	assert.True(t, model.loading)

	model, _ = model.Update(searchResultsMsg{query: "e", posts: nil})
	model, _ = model.Update(runes("s"))
	model, cmd = model.Update(runes("t"))
	require.NotNil(t, cmd)

	results, err := model.client.SearchPosts("est")
	require.NoError(t, err)
	model, _ = model.Update(searchResultsMsg{query: "est", posts: results})

	assert.False(t, model.loading)
	require.Len(t, model.items, 2)
	assert.Equal(t, "Newest", model.items[0].Title)
	assert.Equal(t, "Oldest", model.items[1].Title)
	assert.Contains(t, model.View(), "Newest")
}

func TestSearchDropsStaleResults(t *testing.T) {
	calls := 0
	model := searchClientCounting(t, &calls)
	model = typeText(model, "mid")

	model, _ = model.Update(searchResultsMsg{query: "mi", posts: samplePosts()})
	assert.Empty(t, model.items)
	assert.True(t, model.loading)
}

func TestSearchEnterOpensPost(t *testing.T) {
	calls := 0
	model := searchClientCounting(t, &calls)
	model = typeText(model, "o")
	model, _ = model.Update(searchResultsMsg{query: "o", posts: samplePosts()[:2]})

	model, _ = model.Update(keyOf(tea.KeyDown))
	_, cmd := model.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg, ok := cmd().(openPostMsg)
	require.True(t, ok)
	assert.Equal(t, uint(2), msg.id)
}

func TestSearchEscClears(t *testing.T) {
	calls := 0
	model := searchClientCounting(t, &calls)
	model = typeText(model, "x")
	model, _ = model.Update(searchResultsMsg{query: "x", posts: samplePosts()[:1]})

	model, _ = model.Update(keyOf(tea.KeyEsc))
	assert.Equal(t, "", model.input.Value())
	assert.Empty(t, model.items)
	assert.Contains(t, model.View(), "Type to search.")
}

func TestSearchEmptyResults(t *testing.T) {
	calls := 0
	model := searchClientCounting(t, &calls)
	model = typeText(model, "zzz")
	model, _ = model.Update(searchResultsMsg{query: "zzz"})

	assert.Contains(t, model.View(), "No matches.")
	_, cmd := model.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
}
