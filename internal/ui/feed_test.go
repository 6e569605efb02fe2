package ui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/store"
)

func feedClient(t *testing.T, calls *int) *api.Client {
	return testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if calls != nil {
			*calls++
		}
		writeJSON(w, map[string]any{"posts": samplePosts(), "count": len(samplePosts())})
	})
}

func loadedFeed(t *testing.T, st *store.DB) FeedModel {
	t.Helper()
	model := NewFeedModel(feedClient(t, nil), st)
	cmd := model.Init()
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())
	return model
}

func TestFeedLoadsCategorizedPostsNewestFirst(t *testing.T) {
	model := loadedFeed(t, nil)

	assert.False(t, model.loading)
	require.NotNil(t, model.feed)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, listItems(model.list))
	assert.Equal(t, 3, model.feed.Total)
}

func TestFeedEnterOpensSelectedPost(t *testing.T) {
	model := loadedFeed(t, nil)

	model, _ = model.Update(keyOf(tea.KeyDown))
	_, cmd := model.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg, ok := cmd().(openPostMsg)
	require.True(t, ok)
	assert.Equal(t, uint(2), msg.id)
}

func TestFeedTopAndBottomJump(t *testing.T) {
	model := loadedFeed(t, nil)

	model, _ = model.Update(runes("G"))
	assert.Equal(t, 2, model.list.Selected())

	model, _ = model.Update(runes("g"))
	assert.Equal(t, 0, model.list.Selected())
}

func TestFeedTabSwitchResetsPageAndPersists(t *testing.T) {
	st := testStore(t)
	model := loadedFeed(t, st)
	model.query.Page = 2

	model, cmd := model.Update(keyOf(tea.KeyTab))
	require.NotNil(t, cmd)
	assert.Equal(t, api.TabHot, model.query.Tab)
	assert.Equal(t, 1, model.query.Page)
	assert.True(t, model.loading)

	raw, err := st.Pref(store.KeyFeedQuery, "")
	require.NoError(t, err)
	assert.Equal(t, "tab=hot&page=1", raw)

	model, _ = model.Update(cmd())
	assert.Equal(t, []string{"Oldest", "Middle", "Newest"}, listItems(model.list))

	restored := NewFeedModel(model.client, st)
	assert.Equal(t, api.FeedQuery{Tab: api.TabHot, Page: 1}, restored.query)
}

func TestFeedShiftTabWrapsBackwards(t *testing.T) {
	model := loadedFeed(t, nil)

	model, _ = model.Update(keyOf(tea.KeyShiftTab))
	assert.Equal(t, api.TabRecommend, model.query.Tab)
}

func TestFeedIgnoresStaleResponse(t *testing.T) {
	model := loadedFeed(t, nil)

	stale := feedLoadedMsg{
		query: api.FeedQuery{Tab: api.TabHot, Page: 1},
		feed:  &api.Feed{Posts: []api.Post{{ID: 9, Title: "Stale"}}, Page: 1, TotalPages: 1, Total: 1},
	}
	model, _ = model.Update(stale)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, listItems(model.list))
}

func TestFeedPagingStaysInBounds(t *testing.T) {
	calls := 0
	model := NewFeedModel(feedClient(t, &calls), nil)
	model, _ = model.Update(model.Init()())
	require.Equal(t, 1, calls)

	_, cmd := model.Update(runes("p"))
	assert.Nil(t, cmd)

	_, cmd = model.Update(runes("n"))
	assert.Nil(t, cmd, "single page feed has no next page")

	_, cmd = model.Update(runes("r"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 2, calls)
}

func TestFeedViewNarrowAndWide(t *testing.T) {
	model := loadedFeed(t, nil)

	model.width = 90
	narrow := model.View()
	assert.Contains(t, narrow, "Newest")
	assert.Contains(t, narrow, "Page 1 of 1")
	assert.NotContains(t, narrow, "Category")

	model.width = 150
	wide := model.View()
	assert.Contains(t, wide, "Category")
	assert.Contains(t, wide, "tui, markdown")
}

func TestFeedViewLoading(t *testing.T) {
	model := NewFeedModel(nil, nil)
	model.width = 80
	assert.Contains(t, model.View(), "Loading posts...")
}
