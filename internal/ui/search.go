package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/ui/components"
)

type searchResultsMsg struct {
	query string
	posts []api.Post
}

// SearchModel filters posts by title as the user types.
type SearchModel struct {
	client  *api.Client
	input   textinput.Model
	loading bool
	list    *components.List
	items   []api.Post
	width   int
	height  int
}

// NewSearchModel builds the search UI model.
func NewSearchModel(client *api.Client) SearchModel {
	in := textinput.New()
	in.Placeholder = "Search post titles"
	in.Prompt = "  > "
	in.CharLimit = 100
	in.Focus()
	return SearchModel{
		client: client,
		input:  in,
		list:   components.NewList(12),
	}
}

func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SearchModel) query() string {
	return strings.TrimSpace(m.input.Value())
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultsMsg:
		if msg.query != m.query() {
			return m, nil
		}
		m.loading = false
		m.items = msg.posts
		labels := make([]string, len(m.items))
		for i, p := range m.items {
			labels[i] = fmt.Sprintf(
				"%s  %s",
				components.SanitizeOneLine(p.Title),
				MutedStyle.Render(components.SanitizeOneLine(p.Author+" · "+formatDate(p.CreatedAt))),
			)
		}
		m.list.SetItems(labels)
		return m, nil
	case tea.KeyMsg:
		switch {
		case isBack(msg), isKey(msg, "ctrl+u"):
			if m.input.Value() != "" {
				m.clear()
			}
			return m, nil
		case isDown(msg):
			m.list.Move(1)
			return m, nil
		case isUp(msg):
			m.list.Move(-1)
			return m, nil
		case isEnter(msg):
			if idx := m.list.Selected(); idx < len(m.items) {
				id := m.items[idx].ID
				return m, func() tea.Msg { return openPostMsg{id: id} }
			}
			return m, nil
		}
		before := m.query()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.query() != before {
			searchCmd := m.search(m.query())
			return m, tea.Batch(cmd, searchCmd)
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SearchModel) clear() {
	m.input.Reset()
	m.items = nil
	m.list.SetItems(nil)
	m.loading = false
}

func (m SearchModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(MutedStyle.Render("Searching..."))
	} else if m.query() == "" {
		b.WriteString(MutedStyle.Render("Type to search."))
	} else if len(m.items) == 0 {
		b.WriteString(MutedStyle.Render("No matches."))
	} else {
		contentWidth := components.BoxContentWidth(m.width)
		maxLabelWidth := contentWidth - 4
		start, visible := m.list.Window()
		for i, label := range visible {
			if maxLabelWidth > 0 {
				label = components.ClampTextWidth(label, maxLabelWidth)
			}
			if start+i == m.list.Selected() {
				b.WriteString(SelectedStyle.Render("  > " + label))
			} else {
				b.WriteString(NormalStyle.Render("    " + label))
			}
			if i < len(visible)-1 {
				b.WriteString("\n")
			}
		}
	}

	return components.Indent(components.TitledBox("Search", b.String(), m.width), 1)
}

func (m *SearchModel) search(q string) tea.Cmd {
	if q == "" {
		m.loading = false
		m.items = nil
		m.list.SetItems(nil)
		return nil
	}
	m.loading = true
	client := m.client
	return func() tea.Msg {
		posts, err := client.SearchPosts(q)
		if err != nil {
			return errMsg{err}
		}
		return searchResultsMsg{query: q, posts: posts}
	}
}
