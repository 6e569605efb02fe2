package composer

import "strings"

const defaultHistoryLimit = 1000

// Pos addresses the buffer by 0-based line and rune column.
type Pos struct {
	Line int
	Col  int
}

// Range is a half-open span [Start, End) in document order.
type Range struct {
	Start Pos
	End   Pos
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func comparePos(a, b Pos) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

func normalizeRange(r Range) Range {
	if comparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

type snapshot struct {
	text   string
	cursor Pos
	anchor Pos
	hasSel bool
}

// Buffer is the editor surface of the composer: text lines, a cursor, an
// optional selection anchored at Anchor and extending to the cursor, and a
// linear undo/redo history. All mutations go through InsertText,
// ReplaceSelection, ReplaceRange, ReplaceLine or SetValue.
type Buffer struct {
	lines   [][]rune
	cursor  Pos
	anchor  Pos
	hasSel  bool
	focused bool

	undo  []snapshot
	redo  []snapshot
	limit int
}

// NewBuffer creates a buffer holding text with the cursor at the start.
func NewBuffer(text string) *Buffer {
	return &Buffer{
		lines: splitLines(text),
		limit: defaultHistoryLimit,
	}
}

// Value returns the full buffer text.
func (b *Buffer) Value() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// SetValue replaces the whole text as one undoable edit and moves the
// cursor to the start.
func (b *Buffer) SetValue(text string) {
	if text == b.Value() {
		b.cursor = Pos{}
		b.hasSel = false
		return
	}
	b.record()
	b.lines = splitLines(text)
	b.cursor = Pos{}
	b.hasSel = false
}

// LineCount returns the number of lines (at least 1).
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Pos {
	return b.cursor
}

// SetCursor moves the cursor and drops any selection.
func (b *Buffer) SetCursor(p Pos) {
	b.cursor = b.clamp(p)
	b.hasSel = false
}

// Selection returns the normalized selection, if a non-empty one exists.
func (b *Buffer) Selection() (Range, bool) {
	if !b.hasSel || b.anchor == b.cursor {
		return Range{}, false
	}
	return normalizeRange(Range{Start: b.anchor, End: b.cursor}), true
}

// SetSelection selects r. The cursor lands on r.End.
func (b *Buffer) SetSelection(r Range) {
	start, end := b.clamp(r.Start), b.clamp(r.End)
	b.anchor = start
	b.cursor = end
	b.hasSel = start != end
}

// ClearSelection drops the selection, keeping the cursor.
func (b *Buffer) ClearSelection() {
	b.hasSel = false
}

// SelectionText returns the selected text, or "" without a selection.
func (b *Buffer) SelectionText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	return b.TextRange(r)
}

// TextRange returns the text covered by r.
func (b *Buffer) TextRange(r Range) string {
	r = normalizeRange(Range{Start: b.clamp(r.Start), End: b.clamp(r.End)})
	if r.Start.Line == r.End.Line {
		return string(b.lines[r.Start.Line][r.Start.Col:r.End.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[r.Start.Line][r.Start.Col:]))
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[r.End.Line][:r.End.Col]))
	return sb.String()
}

// ReplaceSelection replaces the selection (or inserts at the cursor) and
// leaves the cursor after the inserted text.
func (b *Buffer) ReplaceSelection(text string) {
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.ReplaceRange(r, text)
}

// InsertText is ReplaceSelection under the name the key handlers use.
func (b *Buffer) InsertText(text string) {
	b.ReplaceSelection(text)
}

// ReplaceRange replaces r with text, places the cursor after it and returns
// that position.
func (b *Buffer) ReplaceRange(r Range, text string) Pos {
	r = normalizeRange(Range{Start: b.clamp(r.Start), End: b.clamp(r.End)})
	if r.IsEmpty() && text == "" {
		b.cursor = r.Start
		b.hasSel = false
		return r.Start
	}
	b.record()

	before := append([]rune(nil), b.lines[r.Start.Line][:r.Start.Col]...)
	after := append([]rune(nil), b.lines[r.End.Line][r.End.Col:]...)
	inserted := splitLines(text)

	replacement := make([][]rune, 0, len(inserted))
	last := len(inserted) - 1
	for i, seg := range inserted {
		line := seg
		if i == 0 {
			line = append(append([]rune(nil), before...), seg...)
		}
		if i == last {
			line = append(line, after...)
		}
		replacement = append(replacement, line)
	}

	lines := make([][]rune, 0, len(b.lines)-(r.End.Line-r.Start.Line)+last)
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[r.End.Line+1:]...)
	b.lines = lines

	end := Pos{Line: r.Start.Line + last, Col: len(inserted[last])}
	if last == 0 {
		end.Col += len(before)
	}
	b.cursor = end
	b.hasSel = false
	return end
}

// ReplaceLine replaces the whole content of line i.
func (b *Buffer) ReplaceLine(i int, text string) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	if string(b.lines[i]) == text {
		return
	}
	b.ReplaceRange(Range{Start: Pos{Line: i}, End: Pos{Line: i, Col: len(b.lines[i])}}, text)
}

// DeleteBackward deletes the selection or the rune before the cursor.
func (b *Buffer) DeleteBackward() {
	if r, ok := b.Selection(); ok {
		b.ReplaceRange(r, "")
		return
	}
	c := b.cursor
	switch {
	case c.Col > 0:
		b.ReplaceRange(Range{Start: Pos{Line: c.Line, Col: c.Col - 1}, End: c}, "")
	case c.Line > 0:
		prev := c.Line - 1
		b.ReplaceRange(Range{Start: Pos{Line: prev, Col: len(b.lines[prev])}, End: c}, "")
	}
}

// DeleteForward deletes the selection or the rune after the cursor.
func (b *Buffer) DeleteForward() {
	if r, ok := b.Selection(); ok {
		b.ReplaceRange(r, "")
		return
	}
	c := b.cursor
	switch {
	case c.Col < len(b.lines[c.Line]):
		b.ReplaceRange(Range{Start: c, End: Pos{Line: c.Line, Col: c.Col + 1}}, "")
	case c.Line < len(b.lines)-1:
		b.ReplaceRange(Range{Start: c, End: Pos{Line: c.Line + 1}}, "")
	}
}

// Direction is a cursor movement.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
)

// Move moves the cursor. With extend the selection grows from its anchor,
// otherwise the selection is dropped.
func (b *Buffer) Move(dir Direction, extend bool) {
	if extend && !b.hasSel {
		b.anchor = b.cursor
		b.hasSel = true
	}
	c := b.cursor
	switch dir {
	case MoveLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Line > 0 {
			c.Line--
			c.Col = len(b.lines[c.Line])
		}
	case MoveRight:
		if c.Col < len(b.lines[c.Line]) {
			c.Col++
		} else if c.Line < len(b.lines)-1 {
			c.Line++
			c.Col = 0
		}
	case MoveUp:
		if c.Line > 0 {
			c.Line--
		}
	case MoveDown:
		if c.Line < len(b.lines)-1 {
			c.Line++
		}
	case MoveLineStart:
		c.Col = 0
	case MoveLineEnd:
		c.Col = len(b.lines[c.Line])
	}
	b.cursor = b.clamp(c)
	if !extend {
		b.hasSel = false
	}
}

// Undo restores the state before the last edit. It reports false when the
// history is empty.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	i := len(b.undo) - 1
	prev := b.undo[i]
	b.undo = b.undo[:i]
	b.redo = append(b.redo, b.snapshot())
	b.restore(prev)
	return true
}

// Redo re-applies the last undone edit. It reports false when there is
// nothing to redo.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	i := len(b.redo) - 1
	next := b.redo[i]
	b.redo = b.redo[:i]
	b.pushUndo(b.snapshot())
	b.restore(next)
	return true
}

// CanUndo reports whether Undo would change anything.
func (b *Buffer) CanUndo() bool { return len(b.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (b *Buffer) CanRedo() bool { return len(b.redo) > 0 }

// Focus marks the buffer as the input target.
func (b *Buffer) Focus() { b.focused = true }

// Blur removes input focus.
func (b *Buffer) Blur() { b.focused = false }

// Focused reports whether the buffer has input focus.
func (b *Buffer) Focused() bool { return b.focused }

func (b *Buffer) record() {
	b.pushUndo(b.snapshot())
	b.redo = nil
}

func (b *Buffer) pushUndo(s snapshot) {
	if b.limit <= 0 {
		return
	}
	b.undo = append(b.undo, s)
	if len(b.undo) > b.limit {
		b.undo = b.undo[len(b.undo)-b.limit:]
	}
}

func (b *Buffer) snapshot() snapshot {
	return snapshot{text: b.Value(), cursor: b.cursor, anchor: b.anchor, hasSel: b.hasSel}
}

func (b *Buffer) restore(s snapshot) {
	b.lines = splitLines(s.text)
	b.cursor = b.clamp(s.cursor)
	b.anchor = b.clamp(s.anchor)
	b.hasSel = s.hasSel && b.anchor != b.cursor
}

func (b *Buffer) clamp(p Pos) Pos {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	return p
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}
