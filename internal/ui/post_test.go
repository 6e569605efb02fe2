package ui

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doniai/doniai-cli/internal/api"
)

type postServer struct {
	likeActions  []string
	favActions   []string
	comments     []api.CreateCommentRequest
	commentLikes []string
}

func (s *postServer) handler(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/posts/7" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"post": api.Post{
			ID:        7,
			Title:     "Markdown in the terminal",
			Author:    "ann",
			Category:  "Go",
			Content:   "<p>Hello <strong>world</strong></p>",
			Tags:      `["tui"]`,
			Likes:     2,
			Favorites: 1,
			ReadLimit: api.ReadPublic,
			CreatedAt: baseTime,
		}})
	case r.URL.Path == "/api/comments" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"data": []api.Comment{
			{ID: 11, Content: "first!", PostID: 7, User: api.User{Name: "bob"}, CreatedAt: baseTime},
			{ID: 12, Content: "agreed", PostID: 7, ParentID: 11, User: api.User{Name: "cy"}, CreatedAt: baseTime},
		}})
	case r.URL.Path == "/api/comments" && r.Method == http.MethodPost:
		var req api.CreateCommentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.comments = append(s.comments, req)
		writeJSON(w, map[string]any{"data": api.Comment{ID: 99, Content: req.Content, PostID: req.PostID, ParentID: req.ParentID, User: api.User{Name: "me"}}})
	case r.URL.Path == "/api/posts/7/like":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.likeActions = append(s.likeActions, body["action"])
		writeJSON(w, map[string]any{"likes": 3})
	case r.URL.Path == "/api/posts/7/favorite":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.favActions = append(s.favActions, body["action"])
		writeJSON(w, map[string]any{"favorites": 2})
	case r.URL.Path == "/api/comments/11/like":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.commentLikes = append(s.commentLikes, body["action"])
		writeJSON(w, map[string]any{"data": map[string]any{"like_count": 5}})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func openPost(t *testing.T) (PostModel, *postServer) {
	t.Helper()
	srv := &postServer{}
	client := testClient(t, srv.handler)
	model := NewPostModel(client, 7, 100, 60)
	cmd := model.Init()
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())
	require.NotNil(t, model.post)
	return model, srv
}

func TestPostLoadsPostAndComments(t *testing.T) {
	model, _ := openPost(t)

	assert.False(t, model.loading)
	assert.Len(t, model.comments, 2)
	assert.Equal(t, 0, model.cursor)

	view := model.View()
	assert.Contains(t, view, "Post #7")
	assert.Contains(t, view, "Markdown in the terminal")
	assert.Contains(t, view, "Hello world")
	assert.Contains(t, view, "Comments (2)")
	assert.Contains(t, view, "↳")
}

func TestPostIgnoresOtherPostsLoad(t *testing.T) {
	model, _ := openPost(t)

	model, _ = model.Update(postLoadedMsg{id: 8, post: &api.Post{ID: 8, Title: "Other"}})
	assert.Equal(t, uint(7), model.post.ID)
}

func TestPostLikeTogglesBetweenLikeAndUnlike(t *testing.T) {
	model, srv := openPost(t)

	_, cmd := model.Update(runes("l"))
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())
	assert.True(t, model.liked)
	assert.Equal(t, 3, model.post.Likes)

	_, cmd = model.Update(runes("l"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"like", "unlike"}, srv.likeActions)
}

func TestPostFavorite(t *testing.T) {
	model, srv := openPost(t)

	_, cmd := model.Update(runes("f"))
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())

	assert.True(t, model.favorited)
	assert.Equal(t, 2, model.post.Favorites)
	assert.Equal(t, []string{"favorite"}, srv.favActions)
}

func TestPostShareIgnoredWhileInFlight(t *testing.T) {
	model, _ := openPost(t)

	var copied []string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	model, cmd := model.Update(runes("s"))
	require.NotNil(t, cmd)
	assert.True(t, model.sharing)
	assert.Contains(t, model.View(), "Copying link...")

	model, second := model.Update(runes("s"))
	assert.Nil(t, second)

	msg, ok := cmd().(shareDoneMsg)
	require.True(t, ok)
	assert.NoError(t, msg.err)
	assert.True(t, strings.HasSuffix(msg.url, "/post-7-1"))
	assert.Len(t, copied, 1)

	model, _ = model.Update(msg)
	assert.False(t, model.sharing)
}

func TestPostEmptyCommentRejected(t *testing.T) {
	model, srv := openPost(t)

	model, _ = model.Update(runes("c"))
	require.True(t, model.commenting)

	model, cmd := model.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "comment cannot be empty", model.inputErr)
	assert.Empty(t, srv.comments)
}

func TestPostReplyToSelectedComment(t *testing.T) {
	model, srv := openPost(t)

	model, _ = model.Update(runes("r"))
	require.True(t, model.commenting)
	assert.Equal(t, uint(11), model.replyTo)
	assert.Contains(t, model.View(), "Reply to #11")

	model = typeText(model, "nice one")
	model, cmd := model.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())

	require.Len(t, srv.comments, 1)
	assert.Equal(t, api.CreateCommentRequest{Content: "nice one", PostID: 7, ParentID: 11}, srv.comments[0])
	assert.False(t, model.commenting)
	assert.Len(t, model.comments, 3)
	assert.Equal(t, "", model.input.Value())
}

func TestPostCommentEscCancels(t *testing.T) {
	model, _ := openPost(t)

	model, _ = model.Update(runes("c"))
	model = typeText(model, "draft")
	model, _ = model.Update(keyOf(tea.KeyEsc))

	assert.False(t, model.commenting)
	assert.False(t, model.closed, "esc in the comment box must not close the post")
	assert.Equal(t, "", model.input.Value())
}

func TestPostCommentCursorAndLike(t *testing.T) {
	model, srv := openPost(t)

	model, _ = model.Update(runes("]"))
	assert.Equal(t, 1, model.cursor)
	model, _ = model.Update(runes("]"))
	assert.Equal(t, 1, model.cursor, "cursor stops at the last comment")
	model, _ = model.Update(runes("["))
	assert.Equal(t, 0, model.cursor)

	_, cmd := model.Update(runes("L"))
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())

	assert.Equal(t, []string{"like"}, srv.commentLikes)
	assert.Equal(t, 5, model.comments[0].LikeCount)
	assert.True(t, model.likedComments[11])
}

func TestPostEscCloses(t *testing.T) {
	model, _ := openPost(t)
	model, _ = model.Update(keyOf(tea.KeyEsc))
	assert.True(t, model.closed)
}
