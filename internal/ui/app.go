package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/composer"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/markdown"
	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabFeed     = 0
	tabCompose  = 1
	tabSearch   = 2
	tabSettings = 3
	tabCount    = 4
)

var tabNames = []string{"Feed", "Compose", "Search", "Settings"}

const toastDuration = 2500 * time.Millisecond

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{}
type startupCheckedMsg struct {
	online int
	err    error
}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs and the post overlay.
type App struct {
	client      *api.Client
	config      *config.Config
	store       *store.DB
	tab         int
	tabNav      bool
	width       int
	height      int
	err         string
	helpOpen    bool
	quitConfirm bool

	startupChecking bool
	online          int
	toast           *appToast

	post *PostModel

	feed     FeedModel
	compose  ComposeModel
	search   SearchModel
	settings SettingsModel
}

// NewApp creates the root application model. st may be nil, in which case
// drafts and preferences live only for the session.
func NewApp(client *api.Client, cfg *config.Config, st *store.DB, renderer markdown.Renderer) App {
	if cfg == nil {
		cfg = config.Default()
	}
	if renderer == nil {
		renderer = markdown.New()
	}
	if st != nil {
		ApplyTheme(st.Theme())
	}
	var poster composer.Poster
	if client != nil {
		poster = client
	}
	return App{
		client:          client,
		config:          cfg,
		store:           st,
		tab:             tabFeed,
		tabNav:          true,
		startupChecking: client != nil,
		online:          -1,
		feed:            NewFeedModel(client, st),
		compose:         NewComposeModel(poster, st, renderer),
		search:          NewSearchModel(client),
		settings:        NewSettingsModel(client, st, cfg),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.feed.Init()}
	if a.startupChecking {
		cmds = append(cmds, a.runStartupCheckCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.feed.width = msg.Width
		a.feed.height = msg.Height
		a.search.width = msg.Width
		a.search.height = msg.Height
		a.settings.width = msg.Width
		a.settings.height = msg.Height
		a.settings.auth.width = msg.Width
		a.settings.auth.height = msg.Height
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		if a.post != nil {
			post, _ := a.post.Update(msg)
			a.post = &post
		}
		return a, cmd

	case errMsg:
		a.err = msg.err.Error()
		a.feed.loading = false
		a.search.loading = false
		if a.post != nil {
			a.post.loading = false
		}
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil
	case startupCheckedMsg:
		a.startupChecking = false
		if msg.err != nil {
			toast := a.setToast("error", "Server unreachable: "+a.config.BaseURL)
			return a, toast
		}
		a.online = msg.online
		a.settings.online = msg.online
		return a, nil

	case loggedInMsg:
		return a.applyLogin(msg.session)
	case loggedOutMsg:
		a.config.Session = ""
		a.config.Username = ""
		a.config.Email = ""
		a.config.UserID = 0
		if a.client != nil {
			a.client.SetSession("")
		}
		if err := a.config.Save(); err != nil {
			a.err = fmt.Sprintf("save config: %v", err)
			return a, nil
		}
		a.settings.auth = NewAuthModel(a.client)
		a.settings.auth.width = a.width
		toast := a.setToast("info", "Signed out")
		return a, toast
	case themeChangedMsg:
		ApplyTheme(msg.theme)
		a.compose.refreshPreview()
		if a.post != nil {
			a.post.refresh()
		}
		toast := a.setToast("info", "Theme: "+msg.theme)
		return a, toast

	case openPostMsg:
		post := NewPostModel(a.client, msg.id, a.width, a.height)
		a.post = &post
		return a, post.Init()

	// Async results go to their owner whichever tab is showing.
	case feedLoadedMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	case searchResultsMsg:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	case submitDoneMsg:
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		toast := a.toastCmdForMsg(msg)
		if msg.result.Outcome != composer.Published {
			return a, batchCmds(cmd, toast)
		}
		// A published post sends the user home, with the feed reloaded
		// so the new post shows up.
		a.tab, a.tabNav = tabFeed, true
		reload := a.feed.reload()
		return a, batchCmds(cmd, toast, reload)
	case draftTickMsg, draftSavedMsg:
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		return a, cmd
	case postLoadedMsg, postToggledMsg, commentCreatedMsg, commentLikedMsg, shareDoneMsg:
		var cmd tea.Cmd
		if a.post != nil {
			post, c := a.post.Update(msg)
			a.post = &post
			cmd = c
		}
		toast := a.toastCmdForMsg(msg)
		return a, batchCmds(cmd, toast)
	case profileSavedMsg, passwordChangedMsg, settingsFailedMsg, onlineCountMsg, authDoneMsg, authFailedMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		if m, ok := msg.(onlineCountMsg); ok && m.count >= 0 {
			a.online = m.count
		}
		return a, cmd

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.err != "" {
			a.err = ""
		}

		if isKey(msg, "ctrl+c") || (isQuit(msg) && !a.capturesText()) {
			if a.compose.hasUnsaved() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}

		if a.post != nil {
			post, cmd := a.post.Update(msg)
			if post.closed {
				a.post = nil
			} else {
				a.post = &post
			}
			return a, cmd
		}

		if !a.capturesText() {
			if isKey(msg, "?") {
				a.helpOpen = true
				return a, nil
			}
			if idx, ok := tabIndexForKey(msg.String()); ok {
				return a.switchTab(idx)
			}
		}

		// Arrow tab navigation until the user enters content with Down.
		if a.tabNav {
			switch {
			case isKey(msg, "left"):
				return a.switchTab((a.tab - 1 + tabCount) % tabCount)
			case isKey(msg, "right"):
				return a.switchTab((a.tab + 1) % tabCount)
			case isDown(msg):
				a.tabNav = false
				return a, nil
			}
			a.tabNav = false
		} else if isUp(msg) && a.canExitToTabNav() {
			a.tabNav = true
			return a, nil
		}
	}

	if a.post != nil {
		post, cmd := a.post.Update(msg)
		a.post = &post
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.tab {
	case tabFeed:
		a.feed, cmd = a.feed.Update(msg)
	case tabCompose:
		a.compose, cmd = a.compose.Update(msg)
	case tabSearch:
		a.search, cmd = a.search.Update(msg)
	case tabSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) applyLogin(sess *api.Session) (tea.Model, tea.Cmd) {
	if sess == nil {
		return a, nil
	}
	a.config.Session = sess.Cookie
	a.config.Username = sess.Name
	a.config.Email = sess.Email
	a.config.UserID = sess.UserID
	if a.client != nil {
		a.client.SetSession(sess.Cookie)
	}
	if err := a.config.Save(); err != nil {
		a.err = fmt.Sprintf("save config: %v", err)
		return a, nil
	}
	name := sess.Name
	if name == "" {
		name = sess.Email
	}
	toast := a.setToast("success", "Signed in as "+name)
	return a, batchCmds(toast, fetchOnlineCount(a.client))
}

func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	live := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return tea.Batch(live...)
}

// capturesText reports whether printable keys belong to a text field, in
// which case q, ? and the number keys are typed rather than handled.
func (a App) capturesText() bool {
	if a.post != nil {
		return a.post.commenting
	}
	if a.tabNav {
		return false
	}
	switch a.tab {
	case tabCompose:
		return a.compose.capturesText()
	case tabSearch:
		return true
	case tabSettings:
		return a.settings.capturesText()
	}
	return false
}

func (a App) View() string {
	var header string
	if !(a.tab == tabCompose && a.compose.fullscreen && a.post == nil) {
		header = centerBlock(RenderBanner(), a.width) + "\n"
	}
	tabs := centerBlock(a.renderTabs(), a.width)
	startup := ""
	if a.startupChecking {
		startup = "\n" + centerLines(MutedStyle.Render("Connecting to "+a.config.BaseURL+"..."), a.width)
	}

	var content string
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	case a.post != nil:
		content = a.post.View()
	default:
		switch a.tab {
		case tabFeed:
			content = a.feed.View()
		case tabCompose:
			content = a.compose.View()
		case tabSearch:
			content = a.search.View()
		case tabSettings:
			content = a.settings.View()
		}
	}
	content = centerBlock(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlock(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlock(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s%s%s\n\n%s\n\n%s%s", header, tabs, startup, content, hints, feedback)
}

func (a App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab == newTab {
		return a, nil
	}
	return a, a.initTab(newTab)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == tabSettings && a.config.LoggedIn() {
			label = fmt.Sprintf("%d %s", i+1, a.config.Username)
		}
		style := TabInactiveStyle
		if i == a.tab {
			style = TabActiveStyle
		}
		segments = append(segments, style.Render(label))
	}
	if a.online >= 0 {
		segments = append(segments, MutedStyle.Render(fmt.Sprintf("  %d online", a.online)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) initTab(tab int) tea.Cmd {
	switch tab {
	case tabFeed:
		if a.feed.feed == nil {
			return a.feed.Init()
		}
	case tabCompose:
		return a.compose.Init()
	case tabSearch:
		return a.search.Init()
	case tabSettings:
		return a.settings.Init()
	}
	return nil
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Quit"),
			components.Hint("n", "Stay"),
		}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Back")}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	base := []string{
		components.Hint("1-4", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
	if a.capturesText() {
		base = []string{
			components.Hint("tab", "Next field"),
			components.Hint("ctrl+c", "Quit"),
		}
	}

	if a.post != nil {
		if a.post.commenting {
			return append(base,
				components.Hint("enter", "Send"),
				components.Hint("esc", "Cancel"),
			)
		}
		return append(base,
			components.Hint("l", "Like"),
			components.Hint("f", "Favorite"),
			components.Hint("s", "Share"),
			components.Hint("c", "Comment"),
			components.Hint("r", "Reply"),
			components.Hint("esc", "Back"),
		)
	}

	switch a.tab {
	case tabFeed:
		return append(base,
			components.Hint("↑/↓", "Select"),
			components.Hint("enter", "Open"),
			components.Hint("tab", "Feed"),
			components.Hint("n/p", "Page"),
			components.Hint("r", "Refresh"),
		)
	case tabCompose:
		if a.compose.confirming {
			return []string{
				components.Hint("y", "Publish"),
				components.Hint("n", "Cancel"),
			}
		}
		return append(base,
			components.Hint("ctrl+s", "Publish"),
			components.Hint("ctrl+p", "Mode"),
			components.Hint("ctrl+b", "Bold"),
			components.Hint("ctrl+k", "Link"),
			components.Hint("ctrl+z/y", "Undo/Redo"),
			components.Hint("ctrl+f", "Fullscreen"),
			components.Hint("ctrl+t", "Toolbar"),
			components.Hint("ctrl+l", "Lines"),
		)
	case tabSearch:
		return append(base,
			components.Hint("↑/↓", "Select"),
			components.Hint("enter", "Open"),
			components.Hint("esc", "Clear"),
		)
	case tabSettings:
		if !a.config.LoggedIn() {
			return append(base,
				components.Hint("enter", "Submit"),
				components.Hint("space", "Toggle"),
				components.Hint("ctrl+n", "Switch form"),
			)
		}
		return append(base,
			components.Hint("ctrl+n", "Section"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("ctrl+x", "Sign out"),
		)
	}
	return base
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "Your post has changes that are not saved as a draft yet. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a App) runStartupCheckCmd() tea.Cmd {
	client := a.client.WithTimeout(2 * time.Second)
	return func() tea.Msg {
		n, err := client.OnlineCount()
		return startupCheckedMsg{online: n, err: err}
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a *App) toastCmdForMsg(msg tea.Msg) tea.Cmd {
	var level, text string
	switch msg := msg.(type) {
	case submitDoneMsg:
		if msg.result.Outcome == composer.Published {
			level, text = "success", msg.result.Notice
			if msg.result.Post != nil && a.client != nil {
				text += ": " + a.client.PostURL(msg.result.Post.ID)
			}
		}
	case shareDoneMsg:
		if msg.err != nil {
			level, text = "warning", "Clipboard unavailable, link: "+msg.url
		} else {
			level, text = "success", "Link copied: "+msg.url
		}
	case commentCreatedMsg:
		level, text = "success", "Comment posted"
	}
	if text == "" {
		return nil
	}
	return a.setToast(level, text)
}

// centerLines centers every line on its own; lines as wide as width
// are left alone.
func centerLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) < width {
			lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
			lines[i] = strings.TrimRight(lines[i], " ")
		}
	}
	return strings.Join(lines, "\n")
}

// centerBlock shifts s right as a whole so its widest line is centered.
func centerBlock(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return lipgloss.NewStyle().MarginLeft(pad).Render(s)
}

func (a App) canExitToTabNav() bool {
	switch a.tab {
	case tabFeed:
		return a.feed.list == nil || a.feed.list.Selected() == 0
	case tabCompose:
		return !a.compose.confirming && a.compose.focus == focusTitle
	case tabSearch:
		return len(a.search.items) == 0 || a.search.list.Selected() == 0
	case tabSettings:
		if !a.config.LoggedIn() {
			return a.settings.auth.form.focus == 0
		}
		if f := a.settings.activeForm(); f != nil {
			return f.focus == 0
		}
		return true
	}
	return false
}

// tabIndexForKey maps "1".."N" to a tab index.
func tabIndexForKey(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || len(key) != 1 || n < 1 || n > tabCount {
		return 0, false
	}
	return n - 1, true
}
