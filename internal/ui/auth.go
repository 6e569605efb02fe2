package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/ui/components"
	"github.com/doniai/doniai-cli/internal/validate"
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
	authForgot
	authModeCount
)

var authTitles = [authModeCount]string{"Sign in", "Create account", "Reset password"}

type loggedInMsg struct{ session *api.Session }

type authFailedMsg struct{ err error }

type authDoneMsg struct {
	mode    authMode
	message string
}

// AuthModel holds the sign-in, registration and password reset forms.
type AuthModel struct {
	client   *api.Client
	mode     authMode
	form     form
	remember bool
	agree    bool
	errs     validate.Errors
	notice   string
	failed   bool
	width    int
	height   int
}

// NewAuthModel starts on the sign-in form.
func NewAuthModel(client *api.Client) AuthModel {
	m := AuthModel{client: client, remember: true}
	m.setMode(authLogin)
	return m
}

func (m *AuthModel) setMode(mode authMode) {
	email := m.form.value("email")
	m.mode = mode
	m.errs = nil
	switch mode {
	case authRegister:
		m.form = form{fields: []formField{
			newFormField("username", "Username", "letters, digits, underscores", false),
			newFormField("email", "Email", "you@example.com", false),
			newFormField("password", "Password", "at least 6 characters", true),
			newFormField("confirm_password", "Confirm", "repeat password", true),
		}}
	case authForgot:
		m.form = form{fields: []formField{
			newFormField("email", "Email", "you@example.com", false),
		}}
	default:
		m.form = form{fields: []formField{
			newFormField("email", "Email", "you@example.com", false),
			newFormField("password", "Password", "", true),
		}}
	}
	m.form.setValue("email", email)
	m.form.setFocus(0)
}

// controls counts the focusable rows: fields plus one checkbox for
// sign-in and registration.
func (m AuthModel) controls() int {
	if m.mode == authForgot {
		return len(m.form.fields)
	}
	return len(m.form.fields) + 1
}

func (m AuthModel) onCheckbox() bool {
	return m.mode != authForgot && m.form.focus == len(m.form.fields)
}

func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.failed = false
		m.notice = msg.message
		if msg.mode == authRegister {
			m.setMode(authLogin)
			m.notice = msg.message
		}
		return m, nil
	case authFailedMsg:
		m.failed = true
		if text, ok := api.ServerMessage(msg.err); ok {
			m.notice = text
		} else {
			m.notice = "Network error, please try again"
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case isKey(msg, "ctrl+n"):
			m.setMode((m.mode + 1) % authModeCount)
			m.notice = ""
			return m, nil
		case isNextField(msg), isDown(msg):
			cmd := m.form.setFocus((m.form.focus + 1) % m.controls())
			return m, cmd
		case isPrevField(msg), isUp(msg):
			cmd := m.form.setFocus((m.form.focus - 1 + m.controls()) % m.controls())
			return m, cmd
		case isSpace(msg) && m.onCheckbox():
			if m.mode == authLogin {
				m.remember = !m.remember
			} else {
				m.agree = !m.agree
			}
			return m, nil
		case isEnter(msg), isKey(msg, "ctrl+s"):
			if isEnter(msg) && m.form.focus < m.controls()-1 {
				cmd := m.form.setFocus(m.form.focus + 1)
				return m, cmd
			}
			return m.submit()
		}
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m AuthModel) submit() (AuthModel, tea.Cmd) {
	email := strings.TrimSpace(m.form.value("email"))
	password := m.form.value("password")
	client := m.client

	switch m.mode {
	case authRegister:
		reg := api.Registration{
			Username:        strings.TrimSpace(m.form.value("username")),
			Email:           email,
			Password:        password,
			ConfirmPassword: m.form.value("confirm_password"),
			AgreeTerms:      m.agree,
		}
		m.errs = validate.Register(reg.Username, reg.Email, reg.Password, reg.ConfirmPassword, reg.AgreeTerms)
		if len(m.errs) > 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			text, err := client.Register(reg)
			if err != nil {
				return authFailedMsg{err}
			}
			return authDoneMsg{mode: authRegister, message: text}
		}
	case authForgot:
		m.errs = validate.ForgotPassword(email)
		if len(m.errs) > 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			text, err := client.ForgotPassword(email)
			if err != nil {
				return authFailedMsg{err}
			}
			return authDoneMsg{mode: authForgot, message: text}
		}
	default:
		m.errs = validate.Login(email, password)
		if len(m.errs) > 0 {
			return m, nil
		}
		remember := m.remember
		return m, func() tea.Msg {
			sess, err := client.Login(email, password, remember)
			if err != nil {
				return authFailedMsg{err}
			}
			return loggedInMsg{session: sess}
		}
	}
}

func (m AuthModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view(m.errs))
	switch m.mode {
	case authLogin:
		b.WriteString("\n\n")
		b.WriteString(renderCheckbox("Remember me", m.remember, m.onCheckbox()))
	case authRegister:
		if meter := strengthMeter(m.form.value("password")); meter != "" {
			b.WriteString("\n" + strings.Repeat(" ", 12) + meter)
		}
		b.WriteString("\n\n")
		b.WriteString(renderCheckbox("I accept the terms of service", m.agree, m.onCheckbox()))
		if msg := m.errs.Get("terms"); msg != "" {
			b.WriteString("\n    " + ErrorStyle.Render(msg))
		}
	}
	if line := noticeLine(m.notice, m.failed); line != "" {
		b.WriteString("\n\n" + line)
	}
	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render("ctrl+n: " + authTitles[(m.mode+1)%authModeCount]))
	return components.Indent(components.TitledBox(authTitles[m.mode], b.String(), m.width), 1)
}
