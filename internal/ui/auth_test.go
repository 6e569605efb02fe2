package ui

import (
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doniai/doniai-cli/internal/api"
)

type authServer struct {
	loginForms    []map[string]string
	registerForms []map[string]string
}

func (s *authServer) handler(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	form := map[string]string{}
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}
	switch r.URL.Path {
	case "/login":
		s.loginForms = append(s.loginForms, form)
		if form["password"] != "secret1" {
			writeJSON(w, map[string]any{"status": "error", "message": "wrong email or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: api.SessionCookie, Value: "fresh-session", Path: "/"})
		writeJSON(w, map[string]any{"status": "success", "data": map[string]any{"user_id": 5, "email": form["email"], "name": "ann"}})
	case "/register":
		s.registerForms = append(s.registerForms, form)
		writeJSON(w, map[string]any{"status": "success", "message": "Account created, please sign in"})
	case "/api/auth/forgot-password":
		writeJSON(w, map[string]any{"success": true, "message": "Check your inbox"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newAuth(t *testing.T) (AuthModel, *authServer) {
	srv := &authServer{}
	model := NewAuthModel(testClient(t, srv.handler))
	model.width = 90
	return model, srv
}

func TestAuthLoginValidatesBeforeSending(t *testing.T) {
	model, srv := newAuth(t)

	model, cmd := model.Update(keyOf(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Equal(t, "email is required", model.errs.Get("email"))
	assert.Equal(t, "password is required", model.errs.Get("password"))
	assert.Empty(t, srv.loginForms)
	assert.Contains(t, model.View(), "email is required")
}

func TestAuthLoginSuccess(t *testing.T) {
	model, srv := newAuth(t)

	model = typeText(model, "ann@example.com")
	model, _ = model.Update(keyOf(tea.KeyTab))
	model = typeText(model, "secret1")
	model, cmd := model.Update(keyOf(tea.KeyEnter))
	require.True(t, model.onCheckbox())
	model, cmd = model.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg, ok := cmd().(loggedInMsg)
	require.True(t, ok)
	assert.Equal(t, "fresh-session", msg.session.Cookie)
	assert.Equal(t, "ann", msg.session.Name)
	assert.Equal(t, uint(5), msg.session.UserID)

	require.Len(t, srv.loginForms, 1)
	assert.Equal(t, "ann@example.com", srv.loginForms[0]["email"])
	assert.Equal(t, "on", srv.loginForms[0]["remember"])
}

func TestAuthLoginRejectedShowsServerMessage(t *testing.T) {
	model, _ := newAuth(t)
	model = typeText(model, "ann@example.com")
	model, _ = model.Update(keyOf(tea.KeyTab))
	model = typeText(model, "wrong")

	model, cmd := model.Update(keyOf(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, authFailedMsg{}, msg)

	model, _ = model.Update(msg)
	assert.True(t, model.failed)
	assert.Equal(t, "wrong email or password", model.notice)
}

func TestAuthTransportFailure(t *testing.T) {
	model, _ := newAuth(t)
	model, _ = model.Update(authFailedMsg{err: &api.TransportError{Op: "POST /login", Err: errors.New("refused")}})
	assert.Equal(t, "Network error, please try again", model.notice)
}

func TestAuthRememberToggle(t *testing.T) {
	model, _ := newAuth(t)
	model, _ = model.Update(keyOf(tea.KeyShiftTab))
	require.True(t, model.onCheckbox(), "shift+tab wraps to the checkbox")

	model, _ = model.Update(keyOf(tea.KeySpace))
	assert.False(t, model.remember)
	assert.Contains(t, model.View(), "[ ] Remember me")
}

func TestAuthModeCycleKeepsEmail(t *testing.T) {
	model, _ := newAuth(t)
	model = typeText(model, "ann@example.com")

	model, _ = model.Update(keyOf(tea.KeyCtrlN))
	assert.Equal(t, authRegister, model.mode)
	assert.Equal(t, "ann@example.com", model.form.value("email"))
	assert.Contains(t, model.View(), "Create account")

	model, _ = model.Update(keyOf(tea.KeyCtrlN))
	assert.Equal(t, authForgot, model.mode)
	model, _ = model.Update(keyOf(tea.KeyCtrlN))
	assert.Equal(t, authLogin, model.mode)
}

func TestAuthRegisterRequiresTerms(t *testing.T) {
	model, srv := newAuth(t)
	model, _ = model.Update(keyOf(tea.KeyCtrlN))

	model = typeText(model, "ann_1")
	for _, value := range []string{"ann@example.com", "Secret1!", "Secret1!"} {
		model, _ = model.Update(keyOf(tea.KeyTab))
		model = typeText(model, value)
	}
	assert.Contains(t, model.View(), "strong")

	model, cmd := model.Update(keyOf(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Equal(t, "you must accept the terms", model.errs.Get("terms"))

	model, _ = model.Update(keyOf(tea.KeyTab))
	require.True(t, model.onCheckbox())
	model, _ = model.Update(keyOf(tea.KeySpace))
	model, cmd = model.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)

	model, _ = model.Update(cmd())
	require.Len(t, srv.registerForms, 1)
	assert.Equal(t, "ann_1", srv.registerForms[0]["username"])
	assert.Equal(t, "on", srv.registerForms[0]["agreeTerms"])
	assert.Equal(t, authLogin, model.mode, "a new account goes back to sign in")
	assert.Equal(t, "Account created, please sign in", model.notice)
	assert.Equal(t, "ann@example.com", model.form.value("email"))
}

func TestAuthForgotPassword(t *testing.T) {
	model, _ := newAuth(t)
	model, _ = model.Update(keyOf(tea.KeyCtrlN))
	model, _ = model.Update(keyOf(tea.KeyCtrlN))

	model = typeText(model, "nope")
	model, cmd := model.Update(keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "enter a valid email address", model.errs.Get("email"))

	model = typeText(model, "@example.com")
	model, cmd = model.Update(keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd())
	assert.False(t, model.failed)
	assert.Equal(t, "Check your inbox", model.notice)
}
