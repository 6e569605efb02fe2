package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/composer"
	"github.com/doniai/doniai-cli/internal/ui/components"
	"github.com/doniai/doniai-cli/internal/validate"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

type postLoadedMsg struct {
	id       uint
	post     *api.Post
	comments []api.Comment
}

type postToggledMsg struct {
	favorite bool
	action   api.Toggle
	count    int
}

type commentCreatedMsg struct{ comment *api.Comment }

type commentLikedMsg struct {
	id     uint
	action api.Toggle
	count  int
}

type shareDoneMsg struct {
	url string
	err error
}

// PostModel shows one post with its comments.
type PostModel struct {
	client   *api.Client
	id       uint
	post     *api.Post
	comments []api.Comment
	cursor   int
	viewport viewport.Model
	loading  bool

	liked         bool
	favorited     bool
	likedComments map[uint]bool

	sharing    bool
	commenting bool
	replyTo    uint
	input      textinput.Model
	inputErr   string

	closed bool
	width  int
	height int
}

// NewPostModel opens post id. Call Init to fetch it.
func NewPostModel(client *api.Client, id uint, width, height int) PostModel {
	in := textinput.New()
	in.Placeholder = "Write a comment"
	in.CharLimit = 2000
	in.Prompt = "> "

	m := PostModel{
		client:        client,
		id:            id,
		loading:       true,
		likedComments: map[uint]bool{},
		input:         in,
		cursor:        -1,
	}
	m.resize(width, height)
	return m
}

func (m PostModel) Init() tea.Cmd {
	client, id := m.client, m.id
	return func() tea.Msg {
		post, err := client.GetPost(id)
		if err != nil {
			return errMsg{err}
		}
		comments, err := client.ListComments(id)
		if err != nil {
			return errMsg{err}
		}
		return postLoadedMsg{id: id, post: post, comments: comments}
	}
}

func (m *PostModel) resize(width, height int) {
	m.width = width
	m.height = height
	w := components.BoxContentWidth(width)
	if w <= 0 {
		w = 72
	}
	h := height - 24
	if h < 8 {
		h = 8
	}
	m.viewport = viewport.New(w, h)
	m.input.Width = w - 4
	m.refresh()
}

func (m PostModel) Update(msg tea.Msg) (PostModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		offset := m.viewport.YOffset
		m.resize(msg.Width, msg.Height)
		m.viewport.SetYOffset(offset)
		return m, nil

	case postLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		m.post = msg.post
		m.comments = msg.comments
		if len(m.comments) > 0 {
			m.cursor = 0
		}
		m.refresh()
		return m, nil

	case postToggledMsg:
		if m.post == nil {
			return m, nil
		}
		if msg.favorite {
			m.favorited = msg.action == api.Favorite
			m.post.Favorites = msg.count
		} else {
			m.liked = msg.action == api.Like
			m.post.Likes = msg.count
		}
		m.refresh()
		return m, nil

	case commentLikedMsg:
		for i := range m.comments {
			if m.comments[i].ID == msg.id {
				m.comments[i].LikeCount = msg.count
			}
		}
		m.likedComments[msg.id] = msg.action == api.Like
		m.refresh()
		return m, nil

	case commentCreatedMsg:
		if msg.comment != nil {
			m.comments = append(m.comments, *msg.comment)
			if m.post != nil {
				m.post.Replies++
			}
		}
		m.commenting = false
		m.replyTo = 0
		m.input.Reset()
		m.input.Blur()
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case shareDoneMsg:
		m.sharing = false
		return m, nil

	case tea.KeyMsg:
		if m.commenting {
			return m.updateCommentInput(msg)
		}
		switch {
		case isBack(msg):
			m.closed = true
			return m, nil
		case isTop(msg):
			m.viewport.GotoTop()
			return m, nil
		case isBottom(msg):
			m.viewport.GotoBottom()
			return m, nil
		}
		if m.post == nil {
			return m, nil
		}
		switch {
		case isKey(msg, "l"):
			return m, m.togglePost(false)
		case isKey(msg, "f"):
			return m, m.togglePost(true)
		case isKey(msg, "s"):
			return m.share()
		case isKey(msg, "c"):
			return m.startComment(0)
		case isKey(msg, "r"):
			if c := m.selectedComment(); c != nil {
				return m.startComment(c.ID)
			}
			return m, nil
		case isKey(msg, "L"):
			return m, m.toggleCommentLike()
		case isNextField(msg), isKey(msg, "]"):
			if m.cursor < len(m.comments)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil
		case isPrevField(msg), isKey(msg, "["):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m PostModel) updateCommentInput(msg tea.KeyMsg) (PostModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.commenting = false
		m.replyTo = 0
		m.inputErr = ""
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case isEnter(msg):
		content := m.input.Value()
		if errs := validate.Comment(content); len(errs) > 0 {
			m.inputErr = errs.Get("content")
			return m, nil
		}
		m.inputErr = ""
		req := api.CreateCommentRequest{
			Content:  strings.TrimSpace(content),
			PostID:   m.id,
			ParentID: m.replyTo,
		}
		client := m.client
		return m, func() tea.Msg {
			c, err := client.CreateComment(req)
			if err != nil {
				return errMsg{err}
			}
			return commentCreatedMsg{comment: c}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PostModel) startComment(parent uint) (PostModel, tea.Cmd) {
	m.commenting = true
	m.replyTo = parent
	m.inputErr = ""
	if parent != 0 {
		m.input.Placeholder = "Write a reply"
	} else {
		m.input.Placeholder = "Write a comment"
	}
	cmd := m.input.Focus()
	return m, cmd
}

func (m PostModel) togglePost(favorite bool) tea.Cmd {
	client, id := m.client, m.id
	if favorite {
		action := api.Favorite
		if m.favorited {
			action = api.Unfavorite
		}
		return func() tea.Msg {
			n, err := client.FavoritePost(id, action)
			if err != nil {
				return errMsg{err}
			}
			return postToggledMsg{favorite: true, action: action, count: n}
		}
	}
	action := api.Like
	if m.liked {
		action = api.Unlike
	}
	return func() tea.Msg {
		n, err := client.LikePost(id, action)
		if err != nil {
			return errMsg{err}
		}
		return postToggledMsg{action: action, count: n}
	}
}

func (m PostModel) toggleCommentLike() tea.Cmd {
	c := m.selectedComment()
	if c == nil {
		return nil
	}
	client, id := m.client, c.ID
	action := api.Like
	if m.likedComments[id] {
		action = api.Unlike
	}
	return func() tea.Msg {
		n, err := client.LikeComment(id, action)
		if err != nil {
			return errMsg{err}
		}
		return commentLikedMsg{id: id, action: action, count: n}
	}
}

// share copies the post link. A second share while one is running is ignored.
func (m PostModel) share() (PostModel, tea.Cmd) {
	if m.sharing {
		return m, nil
	}
	m.sharing = true
	url := m.client.PostURL(m.id)
	return m, func() tea.Msg {
		return shareDoneMsg{url: url, err: writeClipboard(url)}
	}
}

func (m PostModel) selectedComment() *api.Comment {
	if m.cursor < 0 || m.cursor >= len(m.comments) {
		return nil
	}
	return &m.comments[m.cursor]
}

func (m *PostModel) refresh() {
	m.viewport.SetContent(m.renderContent(m.viewport.Width))
}

func (m PostModel) renderContent(width int) string {
	if m.post == nil {
		if m.loading {
			return MutedStyle.Render("Loading post...")
		}
		return MutedStyle.Render("Post not found.")
	}
	p := m.post

	var b strings.Builder
	b.WriteString(SelectedStyle.Render(wrapText(components.SanitizeOneLine(p.Title), width)))
	b.WriteString("\n")
	meta := fmt.Sprintf("%s · %s · %s · %s", p.Author, p.Category, formatDate(p.CreatedAt), api.ReadLimitLabel(p.ReadLimit))
	b.WriteString(MutedStyle.Render(components.ClampTextWidth(meta, width)))
	b.WriteString("\n")
	if tags := composer.ParseTags(p.Tags); len(tags) > 0 {
		b.WriteString(components.Chips(tags, -1, width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(NormalStyle.Render(wrapText(htmlToText(p.Content), width)))
	b.WriteString("\n\n")

	likeMark, favMark := "♡", "☆"
	if m.liked {
		likeMark = "♥"
	}
	if m.favorited {
		favMark = "★"
	}
	b.WriteString(AccentStyle.Render(fmt.Sprintf("%s %d   %s %d   %d views", likeMark, p.Likes, favMark, p.Favorites, p.Views)))
	b.WriteString("\n")
	b.WriteString(DividerStyle.Render(strings.Repeat("─", maxInt(1, width))))
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("Comments (" + strconv.Itoa(len(m.comments)) + ")"))
	b.WriteString("\n")

	if len(m.comments) == 0 {
		b.WriteString(MutedStyle.Render("No comments yet. Press c to write one."))
	}
	for i, c := range m.comments {
		indent := ""
		if c.ParentID != 0 {
			indent = "  ↳ "
		}
		heart := "♡"
		if m.likedComments[c.ID] {
			heart = "♥"
		}
		head := fmt.Sprintf("%s%s · %s · %s %d", indent, c.User.Name, formatDate(c.CreatedAt), heart, c.LikeCount)
		body := wrapText(components.SanitizeText(c.Content), maxInt(1, width-len(indent)-2))
		body = components.Indent(body, len([]rune(indent))+2)
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> " + components.ClampTextWidth(head, width-2)))
		} else {
			b.WriteString(MutedStyle.Render("  " + components.ClampTextWidth(head, width-2)))
		}
		b.WriteString("\n")
		b.WriteString(NormalStyle.Render(body))
		if i < len(m.comments)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (m PostModel) View() string {
	title := "Post"
	if m.post != nil {
		title = fmt.Sprintf("Post #%d", m.post.ID)
	}
	body := m.viewport.View()
	if m.commenting {
		label := "Comment"
		if m.replyTo != 0 {
			label = fmt.Sprintf("Reply to #%d", m.replyTo)
		}
		body += "\n\n" + MetaKeyStyle.Render(label) + "\n" + m.input.View()
		if m.inputErr != "" {
			body += "\n" + ErrorStyle.Render(m.inputErr)
		}
	}
	if m.sharing {
		body += "\n\n" + MutedStyle.Render("Copying link...")
	}
	return components.Indent(components.TitledBox(title, body, m.width), 1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
