package ui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui/components"
	"github.com/doniai/doniai-cli/internal/validate"
)

type settingsSection int

const (
	sectionProfile settingsSection = iota
	sectionPassword
	sectionPreferences
	sectionCount
)

var settingsTitles = [sectionCount]string{"Profile", "Password", "Preferences"}

type profileSavedMsg struct{ message string }
type passwordChangedMsg struct{ message string }
type settingsFailedMsg struct{ err error }
type onlineCountMsg struct{ count int }
type themeChangedMsg struct{ theme string }
type loggedOutMsg struct{}

// SettingsModel is the account tab. Signed out it shows the auth forms.
type SettingsModel struct {
	client   *api.Client
	store    *store.DB
	config   *config.Config
	auth     AuthModel
	section  settingsSection
	profile  form
	password form
	errs     validate.Errors
	notice   string
	failed   bool
	online   int
	width    int
	height   int
}

// NewSettingsModel builds the settings tab.
func NewSettingsModel(client *api.Client, st *store.DB, cfg *config.Config) SettingsModel {
	m := SettingsModel{
		client: client,
		store:  st,
		config: cfg,
		auth:   NewAuthModel(client),
		online: -1,
		profile: form{fields: []formField{
			newFormField("motto", "Motto", "a line about you", false),
			newFormField("github", "GitHub", "account name", false),
			newFormField("google_account", "Google", "you@gmail.com", false),
		}},
		password: form{fields: []formField{
			newFormField("current_password", "Current", "", true),
			newFormField("new_password", "New", "at least 6 characters", true),
			newFormField("confirm_password", "Confirm", "repeat new password", true),
		}},
	}
	m.profile.setFocus(0)
	m.password.setFocus(0)
	return m
}

func (m SettingsModel) loggedIn() bool {
	return m.config.LoggedIn()
}

func (m SettingsModel) Init() tea.Cmd {
	return fetchOnlineCount(m.client)
}

func fetchOnlineCount(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		n, err := client.OnlineCount()
		if err != nil {
			log.Printf("online count: %v", err)
			return onlineCountMsg{count: -1}
		}
		return onlineCountMsg{count: n}
	}
}

// capturesText reports whether printable keys go to a text field.
func (m SettingsModel) capturesText() bool {
	if !m.loggedIn() {
		return !m.auth.onCheckbox()
	}
	return m.section != sectionPreferences
}

func (m *SettingsModel) activeForm() *form {
	switch m.section {
	case sectionProfile:
		return &m.profile
	case sectionPassword:
		return &m.password
	}
	return nil
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case onlineCountMsg:
		m.online = msg.count
		return m, nil
	case profileSavedMsg:
		m.failed = false
		m.notice = msg.message
		return m, nil
	case passwordChangedMsg:
		m.failed = false
		m.notice = msg.message
		m.password.reset()
		m.password.setFocus(0)
		return m, nil
	case settingsFailedMsg:
		m.failed = true
		if text, ok := api.ServerMessage(msg.err); ok {
			m.notice = text
		} else {
			m.notice = "Network error, please try again"
		}
		return m, nil
	}

	if !m.loggedIn() {
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if f := m.activeForm(); f != nil {
			cmd = f.update(msg)
		}
		return m, cmd
	}

	switch {
	case isKey(key, "ctrl+n"):
		m.section = (m.section + 1) % sectionCount
		m.errs = nil
		m.notice = ""
		return m, nil
	case isKey(key, "ctrl+x"):
		client := m.client
		return m, func() tea.Msg {
			if err := client.Logout(); err != nil {
				log.Printf("logout: %v", err)
			}
			return loggedOutMsg{}
		}
	}

	if m.section == sectionPreferences {
		switch {
		case isKey(key, "t"):
			return m, m.toggleTheme()
		case isKey(key, "r"):
			return m, fetchOnlineCount(m.client)
		}
		return m, nil
	}

	f := m.activeForm()
	var cmd tea.Cmd
	switch {
	case isNextField(key), isDown(key):
		cmd = f.setFocus((f.focus + 1) % len(f.fields))
	case isPrevField(key), isUp(key):
		cmd = f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
	case isEnter(key), isKey(key, "ctrl+s"):
		if isEnter(key) && f.focus < len(f.fields)-1 {
			cmd = f.setFocus(f.focus + 1)
			break
		}
		return m.submit()
	default:
		cmd = f.update(msg)
	}
	return m, cmd
}

func (m SettingsModel) toggleTheme() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if st == nil {
			next := store.ThemeLight
			if CurrentTheme() == store.ThemeLight {
				next = store.ThemeDark
			}
			return themeChangedMsg{theme: next}
		}
		theme, err := st.ToggleTheme()
		if err != nil {
			return errMsg{err}
		}
		return themeChangedMsg{theme: theme}
	}
}

func (m SettingsModel) submit() (SettingsModel, tea.Cmd) {
	client := m.client
	switch m.section {
	case sectionProfile:
		p := api.ProfileUpdate{
			Motto:         strings.TrimSpace(m.profile.value("motto")),
			Github:        strings.TrimSpace(m.profile.value("github")),
			GoogleAccount: strings.TrimSpace(m.profile.value("google_account")),
		}
		m.errs = validate.Profile(p.Motto, p.Github, p.GoogleAccount)
		if len(m.errs) > 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			text, err := client.UpdateProfile(p)
			if err != nil {
				return settingsFailedMsg{err}
			}
			return profileSavedMsg{message: text}
		}
	case sectionPassword:
		current := m.password.value("current_password")
		next := m.password.value("new_password")
		m.errs = validate.PasswordChange(current, next, m.password.value("confirm_password"))
		if len(m.errs) > 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			text, err := client.ChangePassword(api.PasswordChange{CurrentPassword: current, NewPassword: next})
			if err != nil {
				return settingsFailedMsg{err}
			}
			return passwordChangedMsg{message: text}
		}
	}
	return m, nil
}

func (m SettingsModel) View() string {
	if !m.loggedIn() {
		return m.auth.View()
	}

	segments := make([]string, 0, sectionCount)
	for i, title := range settingsTitles {
		if settingsSection(i) == m.section {
			segments = append(segments, TabActiveStyle.Render(title))
		} else {
			segments = append(segments, TabInactiveStyle.Render(title))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, segments...))
	b.WriteString("\n\n")

	switch m.section {
	case sectionProfile:
		b.WriteString(m.profile.view(m.errs))
	case sectionPassword:
		b.WriteString(m.password.view(m.errs))
		if meter := strengthMeter(m.password.value("new_password")); meter != "" {
			b.WriteString("\n" + strings.Repeat(" ", 11) + meter)
		}
	case sectionPreferences:
		b.WriteString(m.renderPreferences())
	}

	if line := noticeLine(m.notice, m.failed); line != "" {
		b.WriteString("\n\n" + line)
	}
	return components.Indent(components.TitledBox("Settings", b.String(), m.width), 1)
}

func (m SettingsModel) renderPreferences() string {
	online := "unknown"
	if m.online >= 0 {
		online = strconv.Itoa(m.online)
	}
	user := m.config.Username
	if m.config.Email != "" {
		user = fmt.Sprintf("%s <%s>", user, m.config.Email)
	}
	rows := []string{
		components.InfoRow("Signed in as", user),
		components.InfoRow("Server", m.config.BaseURL),
		components.InfoRow("Theme", CurrentTheme()),
		components.InfoRow("Online now", online),
		"",
		MutedStyle.Render("t: toggle theme · r: refresh · ctrl+x: sign out"),
	}
	return strings.Join(rows, "\n")
}
