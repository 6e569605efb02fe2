package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/store"
)

type scriptedPrompter struct {
	answers []string
	confirm bool
	asked   []string
}

func (p *scriptedPrompter) Ask(label string, _ bool, check func(string) error) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return "", errors.New("no answer for " + label)
	}
	v := p.answers[0]
	p.answers = p.answers[1:]
	if check != nil {
		if err := check(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (p *scriptedPrompter) Confirm(string) (bool, error) {
	return p.confirm, nil
}

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func forumServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("DONIAI_BASE_URL", srv.URL)
	return srv.URL
}

func saveSession(t *testing.T, baseURL string) {
	t.Helper()
	require.NoError(t, (&config.Config{BaseURL: baseURL, Session: "s1", Username: "ann"}).Save())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetArgs(args)
	c.SetOut(&out)
	c.SetErr(&out)
	err := c.Execute()
	return out.String(), err
}

func TestLoginSavesSession(t *testing.T) {
	withHome(t)
	forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ann@example.com", r.PostForm.Get("email"))
		assert.Equal(t, "on", r.PostForm.Get("remember"))
		http.SetCookie(w, &http.Cookie{Name: api.SessionCookie, Value: "fresh", Path: "/"})
		writeJSON(w, map[string]any{"status": "success", "data": map[string]any{"user_id": 3, "email": "ann@example.com", "name": "ann"}})
	})

	p := &scriptedPrompter{answers: []string{"ann@example.com", "secret1"}}
	out, err := execute(t, LoginCmd(p))
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as ann")
	assert.Equal(t, []string{"Email", "Password"}, p.asked)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh", cfg.Session)
	assert.Equal(t, uint(3), cfg.UserID)
}

func TestLoginEmailFlagSkipsPrompt(t *testing.T) {
	withHome(t)
	forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": "error", "message": "wrong email or password"})
	})

	p := &scriptedPrompter{answers: []string{"nope"}}
	_, err := execute(t, LoginCmd(p), "--email", "ann@example.com")
	require.Error(t, err)
	assert.Equal(t, "login failed: wrong email or password", err.Error())
	assert.Equal(t, []string{"Password"}, p.asked)

	_, err = config.Load()
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestLogoutClearsConfig(t *testing.T) {
	withHome(t)
	var hits int
	url := forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		hits++
	})
	saveSession(t, url)

	out, err := execute(t, LogoutCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")
	assert.Equal(t, 1, hits)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.LoggedIn())

	out, err = execute(t, LogoutCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestRegisterValidatesAndSubmits(t *testing.T) {
	withHome(t)
	var form map[string]string
	forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		writeJSON(w, map[string]any{"status": "success", "message": "Registered"})
	})

	p := &scriptedPrompter{answers: []string{"ann_1", "ann@example.com", "Secret1!", "Secret1!"}, confirm: true}
	out, err := execute(t, RegisterCmd(p))
	require.NoError(t, err)
	assert.Contains(t, out, "password strength: strong")
	assert.Contains(t, out, "Registered")
	assert.Equal(t, "on", form["agreeTerms"])
	assert.Equal(t, "Secret1!", form["confirmPassword"])

	form = nil
	p = &scriptedPrompter{answers: []string{"ann_1", "ann@example.com", "Secret1!", "Secret1!"}, confirm: false}
	_, err = execute(t, RegisterCmd(p))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terms")
	assert.Nil(t, form)
}

func TestRegisterRejectsBadUsername(t *testing.T) {
	withHome(t)
	p := &scriptedPrompter{answers: []string{"a!"}}
	_, err := execute(t, RegisterCmd(p))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letters, digits and underscores")
}

func TestForgotPasswordArgument(t *testing.T) {
	withHome(t)
	forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/forgot-password", r.URL.Path)
		writeJSON(w, map[string]any{"success": true, "message": "Reset link sent"})
	})

	out, err := execute(t, ForgotPasswordCmd(&scriptedPrompter{}), "ann@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset link sent")

	_, err = execute(t, ForgotPasswordCmd(&scriptedPrompter{}), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid email")
}

func TestPublishFile(t *testing.T) {
	withHome(t)
	var got api.CreatePostRequest
	url := forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/posts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, map[string]any{"success": true, "message": "ok", "post": map[string]any{"id": 12, "title": got.Title}})
	})
	saveSession(t, url)

	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte("# Hi\n\n**bold**\n"), 0o600))

	out, err := execute(t, PublishCmd(), path, "--title", "Hello", "--tag", "go", "--tag", "tui", "--tag", "go", "--category", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Post published")
	assert.Contains(t, out, url+"/post-12-1")

	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, `["go","tui"]`, got.Tags)
	assert.Equal(t, 2, got.CategoryID)
	assert.Equal(t, api.ReadPublic, got.ReadLimit)
	assert.Contains(t, got.Content, "<strong>bold</strong>")
}

func TestPublishDryRunNeedsNoSession(t *testing.T) {
	withHome(t)
	cmd := PublishCmd()
	cmd.SetIn(strings.NewReader("plain *text*"))

	out, err := execute(t, cmd, "-", "--title", "T", "--category", "1", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "<em>text</em>")
	assert.Contains(t, out, "category:   1")
}

func TestPublishInvalidForm(t *testing.T) {
	withHome(t)
	url := forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	saveSession(t, url)

	cmd := PublishCmd()
	cmd.SetIn(strings.NewReader("body"))
	_, err := execute(t, cmd, "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "choose a category")
}

func TestPublishNotLoggedIn(t *testing.T) {
	withHome(t)
	_, err := execute(t, PublishCmd(), "missing.md", "--title", "T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestPublishDraftDeletesItAfterwards(t *testing.T) {
	withHome(t)
	var got api.CreatePostRequest
	url := forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, map[string]any{"success": true, "post": map[string]any{"id": 1}})
	})
	saveSession(t, url)

	st, err := store.Open(config.StorePath())
	require.NoError(t, err)
	id, err := st.SaveDraft(store.Draft{Title: "From draft", Tags: `["a"]`, Body: "text", CategoryID: 4, ReadLimit: api.ReadPrivate})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = execute(t, PublishCmd(), "--draft", "latest")
	require.NoError(t, err)
	assert.Equal(t, "From draft", got.Title)
	assert.Equal(t, `["a"]`, got.Tags)
	assert.Equal(t, 4, got.CategoryID)
	assert.Equal(t, api.ReadPrivate, got.ReadLimit)

	st, err = store.Open(config.StorePath())
	require.NoError(t, err)
	defer st.Close()
	_, err = st.Draft(id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestThemeCommand(t *testing.T) {
	withHome(t)

	out, err := execute(t, ThemeCmd())
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, err = execute(t, ThemeCmd(), "toggle")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = execute(t, ThemeCmd(), "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = execute(t, ThemeCmd(), "blue")
	assert.Error(t, err)
}

func TestDraftsCommand(t *testing.T) {
	withHome(t)

	out, err := execute(t, DraftsCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "no drafts")

	st, err := store.Open(config.StorePath())
	require.NoError(t, err)
	id, err := st.SaveDraft(store.Draft{Body: "x"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err = execute(t, DraftsCmd())
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "(untitled)")

	_, err = execute(t, DraftsCmd(), "rm", id)
	require.NoError(t, err)
	out, err = execute(t, DraftsCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "no drafts")
}

func TestOnlineCommand(t *testing.T) {
	withHome(t)
	forumServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"online_count": 8})
	})

	out, err := execute(t, OnlineCmd())
	require.NoError(t, err)
	assert.Equal(t, "8 online\n", out)
}
