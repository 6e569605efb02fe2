package ui

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/composer"
	"github.com/doniai/doniai-cli/internal/markdown"
	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui/components"
	"github.com/doniai/doniai-cli/internal/validate"
)

type composeFocus int

const (
	focusTitle composeFocus = iota
	focusTags
	focusCategory
	focusReadLimit
	focusToolbar
	focusEditor
	focusCount
)

const draftSaveDelay = 1500 * time.Millisecond

type submitDoneMsg struct{ result composer.Result }

type draftTickMsg struct{ seq int }

type draftSavedMsg struct {
	id  string
	err error
}

// ComposeModel is the Markdown composer screen.
type ComposeModel struct {
	store     *store.DB
	submitter *composer.Submitter
	renderer  markdown.Renderer

	buf    *composer.Buffer
	tags   *composer.TagCollector
	view   *composer.ViewController
	editor editorView

	title     textinput.Model
	tagInput  textinput.Model
	category  textinput.Model
	readLimit int

	focus      composeFocus
	toolbarIdx int

	preview     viewport.Model
	previewErr  string
	lineNumbers bool
	showToolbar bool
	fullscreen  bool

	confirming bool
	pending    int
	errs       validate.Errors
	notice     string
	noticeErr  bool

	draftID    string
	draftSaved time.Time
	editSeq    int

	width  int
	height int
}

// NewComposeModel builds the composer. With a store, the most recent draft
// is restored.
func NewComposeModel(poster composer.Poster, st *store.DB, renderer markdown.Renderer) ComposeModel {
	title := textinput.New()
	title.Placeholder = "Post title"
	title.CharLimit = 200
	title.Prompt = ""

	tagInput := textinput.New()
	tagInput.Placeholder = "Add a tag, enter to confirm"
	tagInput.CharLimit = 40
	tagInput.Prompt = ""

	category := textinput.New()
	category.Placeholder = "Category id"
	category.CharLimit = 6
	category.Prompt = ""

	buf := composer.NewBuffer("")
	m := ComposeModel{
		store:       st,
		submitter:   composer.NewSubmitter(poster, renderer),
		renderer:    renderer,
		buf:         buf,
		tags:        composer.NewTagCollector(),
		view:        composer.NewViewController(buf, renderer),
		title:       title,
		tagInput:    tagInput,
		category:    category,
		readLimit:   api.ReadPublic,
		showToolbar: true,
		preview:     viewport.New(40, 10),
	}
	m.restoreDraft()
	m.setFocus(focusTitle)
	return m
}

func (m *ComposeModel) restoreDraft() {
	if m.store == nil {
		m.draftID = store.NewDraftID()
		return
	}
	d, err := m.store.LatestDraft()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("compose: load draft: %v", err)
		}
		m.draftID = store.NewDraftID()
		return
	}
	m.draftID = d.ID
	m.title.SetValue(d.Title)
	m.tags.Restore(d.Tags)
	m.buf = composer.NewBuffer(d.Body)
	m.view = composer.NewViewController(m.buf, m.renderer)
	if d.CategoryID > 0 {
		m.category.SetValue(strconv.Itoa(d.CategoryID))
	}
	if d.ReadLimit >= api.ReadPublic && d.ReadLimit <= api.ReadPrivate {
		m.readLimit = d.ReadLimit
	}
	m.draftSaved = d.UpdatedAt
	m.notice = "Draft restored"
}

func (m ComposeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ComposeModel) setFocus(f composeFocus) {
	m.focus = f
	m.title.Blur()
	m.tagInput.Blur()
	m.category.Blur()
	m.buf.Blur()
	switch f {
	case focusTitle:
		m.title.Focus()
	case focusTags:
		m.tagInput.Focus()
	case focusCategory:
		m.category.Focus()
	case focusEditor:
		m.buf.Focus()
	}
}

// nextFocus skips the form rows while fullscreen and the toolbar while hidden.
func (m *ComposeModel) nextFocus(step int) {
	f := m.focus
	for i := 0; i < int(focusCount); i++ {
		f = composeFocus((int(f) + step + int(focusCount)) % int(focusCount))
		if m.fullscreen && f < focusToolbar {
			continue
		}
		if !m.showToolbar && f == focusToolbar {
			continue
		}
		break
	}
	m.setFocus(f)
}

// capturesText reports whether printable keys belong to the composer.
func (m ComposeModel) capturesText() bool {
	return !m.confirming && m.focus != focusReadLimit && m.focus != focusToolbar
}

// hasUnsaved reports whether a quit would lose work not yet in a draft.
func (m ComposeModel) hasUnsaved() bool {
	if m.store != nil {
		return m.draftSaved.IsZero() && !m.isEmpty()
	}
	return !m.isEmpty()
}

func (m ComposeModel) isEmpty() bool {
	return strings.TrimSpace(m.title.Value()) == "" &&
		strings.TrimSpace(m.buf.Value()) == "" &&
		m.tags.Len() == 0
}

func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPreview()
		return m, nil

	case submitDoneMsg:
		return m.applyResult(msg.result), nil

	case draftTickMsg:
		if msg.seq != m.editSeq {
			return m, nil
		}
		return m, m.saveDraft()

	case draftSavedMsg:
		if msg.err != nil {
			log.Printf("compose: save draft: %v", msg.err)
			return m, nil
		}
		if msg.id == m.draftID {
			m.draftSaved = time.Now()
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			switch {
			case isKey(msg, "y"):
				m.confirming = false
				next := m.submit()
				return m, next
			case isKey(msg, "n"), isBack(msg):
				m.confirming = false
			}
			return m, nil
		}
		if cmd, ok := m.handleShortcut(msg); ok {
			return m, cmd
		}
		switch {
		case isNextField(msg):
			m.nextFocus(1)
			return m, nil
		case isPrevField(msg):
			m.nextFocus(-1)
			return m, nil
		}
		return m.updateFocused(msg)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusTags:
		m.tagInput, cmd = m.tagInput.Update(msg)
	case focusCategory:
		m.category, cmd = m.category.Update(msg)
	}
	return m, cmd
}

// handleShortcut runs the ctrl chords that work from any field.
func (m *ComposeModel) handleShortcut(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+b":
		return m.dispatch(composer.ActionBold), true
	case "ctrl+k":
		return m.dispatch(composer.ActionLink), true
	case "ctrl+z":
		return m.dispatch(composer.ActionUndo), true
	case "ctrl+y":
		return m.dispatch(composer.ActionRedo), true
	case "ctrl+p":
		modes := composer.Modes()
		next := modes[(int(m.view.Mode())+1)%len(modes)]
		m.setMode(next)
		return nil, true
	case "ctrl+l":
		m.lineNumbers = !m.lineNumbers
		return nil, true
	case "ctrl+t":
		m.showToolbar = !m.showToolbar
		if !m.showToolbar && m.focus == focusToolbar {
			m.setFocus(focusEditor)
		}
		return nil, true
	case "ctrl+f":
		m.fullscreen = !m.fullscreen
		if m.fullscreen && m.focus < focusToolbar {
			m.setFocus(focusEditor)
		}
		m.layoutPreview()
		return nil, true
	case "ctrl+s":
		m.errs = composer.CheckForm(m.form())
		if len(m.errs) > 0 {
			m.notice = composer.NoticeInvalid
			m.noticeErr = true
			return nil, true
		}
		m.confirming = true
		return nil, true
	}
	return nil, false
}

func (m ComposeModel) updateFocused(msg tea.KeyMsg) (ComposeModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		before := m.title.Value()
		m.title, cmd = m.title.Update(msg)
		if m.title.Value() != before {
			touchCmd := m.touch()
			return m, tea.Batch(cmd, touchCmd)
		}
	case focusTags:
		switch {
		case isEnter(msg), isKey(msg, ","):
			next := m.commitTag()
			return m, next
		case isKey(msg, "backspace") && m.tagInput.Value() == "":
			if tags := m.tags.Tags(); len(tags) > 0 {
				m.tags.Remove(tags[len(tags)-1])
				next := m.touch()
				return m, next
			}
			return m, nil
		}
		m.tagInput, cmd = m.tagInput.Update(msg)
	case focusCategory:
		if msg.Type == tea.KeySpace || (msg.Type == tea.KeyRunes && !isDigits(string(msg.Runes))) {
			return m, nil
		}
		before := m.category.Value()
		m.category, cmd = m.category.Update(msg)
		if m.category.Value() != before {
			touchCmd := m.touch()
			return m, tea.Batch(cmd, touchCmd)
		}
	case focusReadLimit:
		switch {
		case isKey(msg, "left", "h"):
			if m.readLimit > api.ReadPublic {
				m.readLimit--
			} else {
				m.readLimit = api.ReadPrivate
			}
			next := m.touch()
			return m, next
		case isKey(msg, "right", "l"), isSpace(msg):
			if m.readLimit < api.ReadPrivate {
				m.readLimit++
			} else {
				m.readLimit = api.ReadPublic
			}
			next := m.touch()
			return m, next
		}
	case focusToolbar:
		actions := composer.Actions()
		switch {
		case isKey(msg, "left", "h"):
			m.toolbarIdx = (m.toolbarIdx - 1 + len(actions)) % len(actions)
		case isKey(msg, "right", "l"):
			m.toolbarIdx = (m.toolbarIdx + 1) % len(actions)
		case isEnter(msg), isSpace(msg):
			cmd = m.dispatch(actions[m.toolbarIdx])
		}
	case focusEditor:
		if m.view.Mode() == composer.ModePreview {
			switch {
			case isTop(msg):
				m.preview.GotoTop()
			case isBottom(msg):
				m.preview.GotoBottom()
			default:
				m.preview, cmd = m.preview.Update(msg)
			}
			return m, cmd
		}
		cmd = m.editKey(msg)
	}
	return m, cmd
}

// editKey applies one key to the buffer.
func (m *ComposeModel) editKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left":
		m.buf.Move(composer.MoveLeft, false)
	case "right":
		m.buf.Move(composer.MoveRight, false)
	case "up":
		m.buf.Move(composer.MoveUp, false)
	case "down":
		m.buf.Move(composer.MoveDown, false)
	case "home", "ctrl+a":
		m.buf.Move(composer.MoveLineStart, false)
	case "end", "ctrl+e":
		m.buf.Move(composer.MoveLineEnd, false)
	case "shift+left":
		m.buf.Move(composer.MoveLeft, true)
	case "shift+right":
		m.buf.Move(composer.MoveRight, true)
	case "shift+up":
		m.buf.Move(composer.MoveUp, true)
	case "shift+down":
		m.buf.Move(composer.MoveDown, true)
	case "shift+home":
		m.buf.Move(composer.MoveLineStart, true)
	case "shift+end":
		m.buf.Move(composer.MoveLineEnd, true)
	case "enter":
		m.buf.InsertText("\n")
		return m.edited()
	case "backspace":
		m.buf.DeleteBackward()
		return m.edited()
	case "delete":
		m.buf.DeleteForward()
		return m.edited()
	default:
		if msg.Type == tea.KeySpace {
			m.buf.InsertText(" ")
			return m.edited()
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			m.buf.InsertText(string(msg.Runes))
			return m.edited()
		}
		return nil
	}
	m.follow()
	return nil
}

// dispatch runs a toolbar action and hands focus back to the editor.
func (m *ComposeModel) dispatch(a composer.Action) tea.Cmd {
	if err := composer.Dispatch(m.buf, a); err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		return nil
	}
	m.setFocus(focusEditor)
	return m.edited()
}

// edited runs after every buffer change. The preview is only rendered when
// a mode is entered, so split mode shows the text as of that switch.
func (m *ComposeModel) edited() tea.Cmd {
	m.follow()
	return m.touch()
}

// touch schedules a draft save once edits pause.
func (m *ComposeModel) touch() tea.Cmd {
	m.editSeq++
	m.draftSaved = time.Time{}
	if m.store == nil {
		return nil
	}
	seq := m.editSeq
	return tea.Tick(draftSaveDelay, func(time.Time) tea.Msg {
		return draftTickMsg{seq: seq}
	})
}

func (m ComposeModel) saveDraft() tea.Cmd {
	if m.store == nil {
		return nil
	}
	d := store.Draft{
		ID:         m.draftID,
		Title:      m.title.Value(),
		Tags:       m.tags.Field(),
		Body:       m.buf.Value(),
		CategoryID: m.categoryID(),
		ReadLimit:  m.readLimit,
	}
	st := m.store
	return func() tea.Msg {
		id, err := st.SaveDraft(d)
		return draftSavedMsg{id: id, err: err}
	}
}

func (m *ComposeModel) commitTag() tea.Cmd {
	text := strings.TrimSpace(m.tagInput.Value())
	m.tagInput.Reset()
	if text == "" {
		return nil
	}
	if !m.tags.Add(text) {
		m.notice = fmt.Sprintf("Tag %q is already added", text)
		m.noticeErr = true
		return nil
	}
	m.notice = ""
	return m.touch()
}

func (m *ComposeModel) setMode(mode composer.Mode) {
	if err := m.view.SetMode(mode); err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		return
	}
	m.layoutPreview()
	m.follow()
}

func (m *ComposeModel) layoutPreview() {
	_, previewWidth := m.view.PaneWidths(m.paneTotalWidth())
	w := previewWidth - paneFrameWidth
	if w < 10 {
		w = 10
	}
	m.preview.Width = w
	m.preview.Height = m.paneHeight()
	if m.view.Mode() != composer.ModeSource {
		m.refreshPreview()
	}
}

// refreshPreview draws the last rendered pane for the terminal. The HTML in
// the pane is what gets published; the terminal shows the same source.
func (m *ComposeModel) refreshPreview() {
	pane := m.view.Pane()
	m.previewErr = ""
	if pane.Err != nil {
		m.previewErr = pane.Err.Error()
	}
	out, err := markdown.Terminal(pane.Source, CurrentTheme(), m.preview.Width)
	if err != nil {
		out = htmlToText(pane.HTML)
	}
	if strings.TrimSpace(pane.Source) == "" {
		out = MutedStyle.Render("Nothing to preview yet.")
	}
	m.preview.SetContent(out)
}

func (m *ComposeModel) follow() {
	editorWidth, _ := m.view.PaneWidths(m.paneTotalWidth())
	w := editorWidth - paneFrameWidth - gutterWidth(m.buf, m.lineNumbers)
	m.editor.follow(m.buf, w, m.paneHeight())
}

func (m ComposeModel) paneTotalWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

func (m ComposeModel) paneHeight() int {
	reserved := 32
	if m.fullscreen {
		reserved = 14
	}
	if !m.showToolbar {
		reserved -= 2
	}
	h := m.height - reserved
	if h < 5 {
		h = 5
	}
	return h
}

func (m ComposeModel) categoryID() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.category.Value()))
	if err != nil {
		return 0
	}
	return n
}

func (m ComposeModel) form() composer.Form {
	return composer.Form{
		Title:      m.title.Value(),
		Tags:       m.tags,
		Buffer:     m.buf,
		CategoryID: m.categoryID(),
		ReadLimit:  m.readLimit,
	}
}

// submit sends a snapshot of the form so later edits cannot race the request.
func (m *ComposeModel) submit() tea.Cmd {
	tags := composer.NewTagCollector()
	tags.Restore(m.tags.Field())
	f := composer.Form{
		Title:      m.title.Value(),
		Tags:       tags,
		Buffer:     composer.NewBuffer(m.buf.Value()),
		CategoryID: m.categoryID(),
		ReadLimit:  m.readLimit,
	}
	m.pending++
	m.notice = "Publishing..."
	m.noticeErr = false
	submitter := m.submitter
	return func() tea.Msg {
		return submitDoneMsg{result: submitter.Submit(f)}
	}
}

func (m ComposeModel) applyResult(r composer.Result) ComposeModel {
	if m.pending > 0 {
		m.pending--
	}
	m.notice = r.Notice
	m.noticeErr = r.Outcome != composer.Published
	m.errs = r.Errors
	if r.Outcome != composer.Published {
		return m
	}
	if m.store != nil {
		if err := m.store.DeleteDraft(m.draftID); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("compose: delete draft: %v", err)
		}
	}
	m.reset()
	return m
}

// reset clears the form for the next post under a fresh draft id.
func (m *ComposeModel) reset() {
	m.title.Reset()
	m.tagInput.Reset()
	m.category.Reset()
	m.readLimit = api.ReadPublic
	m.buf = composer.NewBuffer("")
	m.tags = composer.NewTagCollector()
	m.view = composer.NewViewController(m.buf, m.renderer)
	m.editor = editorView{}
	m.draftID = store.NewDraftID()
	m.draftSaved = time.Time{}
	m.editSeq++
	m.errs = nil
	m.setFocus(focusTitle)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m ComposeModel) View() string {
	if m.confirming {
		return components.Indent(components.ConfirmPreviewDialog("Publish", m.summaryRows(), m.width), 1)
	}
	sections := make([]string, 0, 4)
	if !m.fullscreen {
		sections = append(sections, m.renderForm())
	}
	if m.showToolbar {
		sections = append(sections, m.renderToolbar())
	}
	sections = append(sections, m.renderPanes(), m.renderStatus())
	return components.Indent(strings.Join(sections, "\n"), 1)
}

const formLabelWidth = 10

func (m ComposeModel) renderForm() string {
	width := m.paneTotalWidth()
	inner := width - paneFrameWidth

	label := func(text string, f composeFocus) string {
		style := MetaKeyStyle
		if m.focus == f {
			style = SelectedStyle
		}
		return style.Render(padRightText(text, formLabelWidth))
	}
	fieldErr := func(field string) string {
		if msg := m.errs.Get(field); msg != "" {
			return "\n" + strings.Repeat(" ", formLabelWidth) + ErrorStyle.Render(msg)
		}
		return ""
	}

	rows := []string{
		label("Title", focusTitle) + m.title.View() + fieldErr("title"),
	}

	tagLine := label("Tags", focusTags) + m.tagInput.View()
	if chips := components.Chips(m.tags.Tags(), -1, inner-formLabelWidth); chips != "" {
		tagLine += "\n" + components.Indent(chips, formLabelWidth)
	}
	rows = append(rows, tagLine)

	access := readLimitChoice(m.readLimit)
	if m.focus == focusReadLimit {
		access = SelectedStyle.Render("< " + access + " >")
	} else {
		access = NormalStyle.Render("  " + access)
	}
	rows = append(rows,
		label("Category", focusCategory)+m.category.View()+fieldErr("category"),
		label("Access", focusReadLimit)+access+fieldErr("read_limit"),
	)
	return components.PaneBox("New Post", strings.Join(rows, "\n"), width, m.focus < focusToolbar)
}

// readLimitChoice names a read limit for the composer selector.
func readLimitChoice(limit int) string {
	return fmt.Sprintf("%d · %s", limit, api.ReadLimitLabel(limit))
}

func (m ComposeModel) renderToolbar() string {
	segments := make([]string, 0, len(composer.Modes())+len(composer.Actions())+1)
	for _, mode := range composer.Modes() {
		if mode == m.view.Mode() {
			segments = append(segments, TabActiveStyle.Render(mode.String()))
		} else {
			segments = append(segments, TabInactiveStyle.Render(mode.String()))
		}
	}
	segments = append(segments, DividerStyle.Render(" │ "))
	for i, a := range composer.Actions() {
		if m.focus == focusToolbar && i == m.toolbarIdx {
			segments = append(segments, ToolbarFocusStyle.Render(a.Label()))
		} else {
			segments = append(segments, ToolbarStyle.Render(a.Label()))
		}
	}
	return lipgloss.NewStyle().Width(m.paneTotalWidth()).Render(strings.Join(segments, ""))
}

func (m ComposeModel) renderPanes() string {
	editorWidth, previewWidth := m.view.PaneWidths(m.paneTotalWidth())
	showEditor, showPreview := m.view.Visible()
	height := m.paneHeight()

	panes := make([]string, 0, 2)
	if showEditor {
		cur := m.buf.Cursor()
		title := fmt.Sprintf("Markdown · Ln %d, Col %d", cur.Line+1, cur.Col+1)
		body := m.editor.render(m.buf, editorWidth-paneFrameWidth, height, m.lineNumbers, m.focus == focusEditor)
		panes = append(panes, components.PaneBox(title, body, editorWidth, m.focus == focusEditor))
	}
	if showPreview {
		body := m.preview.View()
		if m.previewErr != "" {
			body = ErrorStyle.Render(m.previewErr) + "\n" + body
		}
		active := !showEditor && m.focus == focusEditor
		panes = append(panes, components.PaneBox("Preview", body, previewWidth, active))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m ComposeModel) renderStatus() string {
	parts := make([]string, 0, 4)
	if m.notice != "" {
		if m.noticeErr {
			parts = append(parts, ErrorStyle.Render(m.notice))
		} else {
			parts = append(parts, SuccessStyle.Render(m.notice))
		}
	}
	if m.pending > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d publishing", m.pending)))
	}
	words := len(strings.Fields(m.buf.Value()))
	parts = append(parts, MutedStyle.Render(fmt.Sprintf("%d words", words)))
	switch {
	case m.store == nil:
	case !m.draftSaved.IsZero():
		parts = append(parts, MutedStyle.Render("draft saved "+m.draftSaved.Local().Format("15:04")))
	case !m.isEmpty():
		parts = append(parts, MutedStyle.Render("draft pending"))
	}
	return " " + strings.Join(parts, MutedStyle.Render(" · "))
}

func (m ComposeModel) summaryRows() []components.TableRow {
	tags := strings.Join(m.tags.Tags(), ", ")
	if tags == "" {
		tags = "-"
	}
	return []components.TableRow{
		{Label: "Title", Value: m.title.Value()},
		{Label: "Tags", Value: tags},
		{Label: "Category", Value: strconv.Itoa(m.categoryID())},
		{Label: "Access", Value: readLimitChoice(m.readLimit)},
		{Label: "Words", Value: strconv.Itoa(len(strings.Fields(m.buf.Value())))},
	}
}

func padRightText(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
