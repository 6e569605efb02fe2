package components

// List tracks a cursor over labels and the window of rows that fits on
// screen. The window always contains the cursor.
type List struct {
	items  []string
	cursor int
	offset int
	height int
}

// NewList returns an empty list showing height rows at a time.
func NewList(height int) *List {
	return &List{height: max(height, 1)}
}

// SetItems replaces the labels and puts the cursor on the first one.
func (l *List) SetItems(items []string) {
	l.items = items
	l.cursor = 0
	l.offset = 0
}

// Len returns the number of labels.
func (l *List) Len() int {
	return len(l.items)
}

// Selected returns the cursor index. It is 0 for an empty list.
func (l *List) Selected() int {
	return l.cursor
}

// Move shifts the cursor by delta, stopping at either end.
func (l *List) Move(delta int) {
	l.Select(l.cursor + delta)
}

// Select puts the cursor on i, clamped to the list, and scrolls it into view.
func (l *List) Select(i int) {
	if len(l.items) == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	l.cursor = min(max(i, 0), len(l.items)-1)
	switch {
	case l.cursor < l.offset:
		l.offset = l.cursor
	case l.cursor >= l.offset+l.height:
		l.offset = l.cursor - l.height + 1
	}
}

// Window returns the index of the first visible label and the visible labels.
func (l *List) Window() (int, []string) {
	end := min(l.offset+l.height, len(l.items))
	if l.offset >= end {
		return l.offset, nil
	}
	return l.offset, l.items[l.offset:end]
}
