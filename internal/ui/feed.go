package ui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui/components"
)

type feedLoadedMsg struct {
	query api.FeedQuery
	feed  *api.Feed
}

type openPostMsg struct{ id uint }

// FeedModel is the home feed: tabbed, paged, newest/hot/recommended posts.
type FeedModel struct {
	client  *api.Client
	store   *store.DB
	query   api.FeedQuery
	feed    *api.Feed
	list    *components.List
	loading bool
	width   int
	height  int
}

var feedTabLabels = map[string]string{
	api.TabLatest:    "Latest",
	api.TabHot:       "Hot",
	api.TabRecommend: "Recommended",
}

// NewFeedModel restores the last tab and page from the store when there is one.
func NewFeedModel(client *api.Client, st *store.DB) FeedModel {
	query := api.FeedQuery{Tab: api.TabLatest, Page: 1}
	if st != nil {
		if raw, err := st.Pref(store.KeyFeedQuery, ""); err == nil && raw != "" {
			query = api.ParseFeedQuery(raw)
		}
	}
	return FeedModel{
		client:  client,
		store:   st,
		query:   query,
		list:    components.NewList(api.PageSize),
		loading: true,
	}
}

func (m FeedModel) Init() tea.Cmd {
	return m.load(m.query)
}

func (m FeedModel) Update(msg tea.Msg) (FeedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case feedLoadedMsg:
		if msg.query != m.query {
			return m, nil
		}
		m.loading = false
		m.feed = msg.feed
		if msg.feed.Page != m.query.Page {
			m.query.Page = msg.feed.Page
			m.persist()
		}
		labels := make([]string, len(msg.feed.Posts))
		for i, p := range msg.feed.Posts {
			labels[i] = p.Title
		}
		m.list.SetItems(labels)
		return m, nil

	case tea.KeyMsg:
		switch {
		case isDown(msg):
			m.list.Move(1)
		case isUp(msg):
			m.list.Move(-1)
		case isTop(msg):
			m.list.Select(0)
		case isBottom(msg):
			m.list.Select(m.list.Len() - 1)
		case isNextField(msg):
			return m.switchTab(1)
		case isPrevField(msg):
			return m.switchTab(-1)
		case isKey(msg, "n", "pgdown"):
			if m.feed != nil && m.query.Page < m.feed.TotalPages {
				m.query.Page++
				cmd := m.reload()
				return m, cmd
			}
		case isKey(msg, "p", "pgup"):
			if m.query.Page > 1 {
				m.query.Page--
				cmd := m.reload()
				return m, cmd
			}
		case isKey(msg, "r"):
			cmd := m.reload()
			return m, cmd
		case isEnter(msg):
			if p := m.selected(); p != nil {
				id := p.ID
				return m, func() tea.Msg { return openPostMsg{id: id} }
			}
		}
	}
	return m, nil
}

func (m *FeedModel) switchTab(step int) (FeedModel, tea.Cmd) {
	tabs := api.FeedTabs()
	idx := 0
	for i, t := range tabs {
		if t == m.query.Tab {
			idx = i
		}
	}
	idx = (idx + step + len(tabs)) % len(tabs)
	m.query = m.query.WithTab(tabs[idx])
	cmd := m.reload()
	return *m, cmd
}

func (m *FeedModel) reload() tea.Cmd {
	m.persist()
	m.loading = true
	return m.load(m.query)
}

func (m FeedModel) load(q api.FeedQuery) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		feed, err := client.FeedPage(q)
		if err != nil {
			return errMsg{err}
		}
		return feedLoadedMsg{query: q, feed: feed}
	}
}

func (m FeedModel) persist() {
	if m.store == nil {
		return
	}
	if err := m.store.SetPref(store.KeyFeedQuery, m.query.Encode()); err != nil {
		log.Printf("feed: save query: %v", err)
	}
}

func (m FeedModel) selected() *api.Post {
	if m.feed == nil {
		return nil
	}
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.feed.Posts) {
		return nil
	}
	return &m.feed.Posts[idx]
}

func (m FeedModel) View() string {
	wide := m.width >= feedPreviewMinWidth
	contentWidth := components.BoxContentWidth(m.width)
	if wide {
		contentWidth = m.width - feedWideMargin - paneFrameWidth
	}

	var b strings.Builder
	b.WriteString(m.renderFeedTabs())
	b.WriteString("\n\n")

	switch {
	case m.loading && m.feed == nil:
		b.WriteString(MutedStyle.Render("Loading posts..."))
	case m.feed == nil || len(m.feed.Posts) == 0:
		b.WriteString(MutedStyle.Render("No posts yet."))
	default:
		b.WriteString(m.renderBody(contentWidth, wide))
		b.WriteString("\n\n")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("Page %d of %d · %d posts", m.feed.Page, m.feed.TotalPages, m.feed.Total)))
	}

	if wide {
		return components.Indent(components.PaneBox("Feed", b.String(), m.width-feedWideMargin, false), 1)
	}
	return components.Indent(components.TitledBox("Feed", b.String(), m.width), 1)
}

func (m FeedModel) renderFeedTabs() string {
	segments := make([]string, 0, len(api.FeedTabs()))
	for _, t := range api.FeedTabs() {
		if t == m.query.Tab {
			segments = append(segments, TabActiveStyle.Render(feedTabLabels[t]))
		} else {
			segments = append(segments, TabInactiveStyle.Render(feedTabLabels[t]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

const (
	feedPreviewMinWidth = 110
	feedWideMargin      = 4
	// border plus horizontal padding of the box components
	paneFrameWidth = 6
)

func (m FeedModel) renderBody(width int, wide bool) string {
	if width <= 0 {
		width = 72
	}
	if !wide {
		return m.renderTable(width)
	}
	previewWidth := preferredPreviewWidth(width)
	tableWidth := width - previewWidth - 2
	if tableWidth < 40 {
		return m.renderTable(width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTable(tableWidth),
		"  ",
		renderPostPreview(m.selected(), previewWidth),
	)
}

func (m FeedModel) renderTable(width int) string {
	cols := []components.Column{
		{Header: "Title", Width: 10, Flex: true},
		{Header: "Author", Width: 12},
		{Header: "Likes", Width: 5, Align: lipgloss.Right},
		{Header: "Views", Width: 5, Align: lipgloss.Right},
		{Header: "Date", Width: 10},
	}
	start, visible := m.list.Window()
	rows := make([][]string, 0, len(visible))
	for i := range visible {
		p := m.feed.Posts[start+i]
		rows = append(rows, []string{
			p.Title,
			p.Author,
			strconv.Itoa(p.Likes),
			strconv.Itoa(p.Views),
			formatDate(p.CreatedAt),
		})
	}
	return components.Grid(cols, rows, width, m.list.Selected()-start)
}
