package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferInsertAndValue(t *testing.T) {
	b := NewBuffer("")
	b.InsertText("hello")
	b.InsertText("\nworld")
	assert.Equal(t, "hello\nworld", b.Value())
	assert.Equal(t, 2, b.LineCount())
	assert.Equal(t, Pos{Line: 1, Col: 5}, b.Cursor())
}

func TestBufferReplaceRangeMultiline(t *testing.T) {
	b := NewBuffer("one\ntwo\nthree")
	end := b.ReplaceRange(Range{Start: Pos{Line: 0, Col: 1}, End: Pos{Line: 2, Col: 2}}, "X\nY")
	assert.Equal(t, "oX\nYree", b.Value())
	assert.Equal(t, Pos{Line: 1, Col: 1}, end)
	assert.Equal(t, end, b.Cursor())
}

func TestBufferSelection(t *testing.T) {
	b := NewBuffer("abc def")
	b.SetSelection(Range{Start: Pos{Col: 6}, End: Pos{Col: 4}})
	r, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, Range{Start: Pos{Col: 4}, End: Pos{Col: 6}}, r)
	assert.Equal(t, "de", b.SelectionText())

	b.ReplaceSelection("XY")
	assert.Equal(t, "abc XYf", b.Value())
	_, ok = b.Selection()
	assert.False(t, ok)
}

func TestBufferMoveExtendsSelection(t *testing.T) {
	b := NewBuffer("abc\ndef")
	b.Move(MoveRight, true)
	b.Move(MoveRight, true)
	assert.Equal(t, "ab", b.SelectionText())
	b.Move(MoveDown, true)
	assert.Equal(t, "abc\nde", b.SelectionText())
	b.Move(MoveLineStart, false)
	_, ok := b.Selection()
	assert.False(t, ok)
	assert.Equal(t, Pos{Line: 1}, b.Cursor())
}

func TestBufferDelete(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(Pos{Line: 1})
	b.DeleteBackward()
	assert.Equal(t, "abcd", b.Value())
	assert.Equal(t, Pos{Col: 2}, b.Cursor())
	b.DeleteForward()
	assert.Equal(t, "abd", b.Value())
}

func TestBufferUndoRedo(t *testing.T) {
	b := NewBuffer("")
	assert.False(t, b.Undo())
	b.InsertText("a")
	b.InsertText("b")
	require.True(t, b.Undo())
	assert.Equal(t, "a", b.Value())
	require.True(t, b.Undo())
	assert.Equal(t, "", b.Value())
	assert.False(t, b.CanUndo())
	require.True(t, b.Redo())
	assert.Equal(t, "a", b.Value())

	b.InsertText("z")
	assert.False(t, b.CanRedo())
}

func TestBufferSetValueIsUndoable(t *testing.T) {
	b := NewBuffer("keep")
	b.SetValue("")
	assert.Equal(t, "", b.Value())
	require.True(t, b.Undo())
	assert.Equal(t, "keep", b.Value())
}

func TestBufferHistoryLimit(t *testing.T) {
	b := NewBuffer("")
	b.limit = 3
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		b.InsertText(s)
	}
	undone := 0
	for b.Undo() {
		undone++
	}
	assert.Equal(t, 3, undone)
	assert.Equal(t, "ab", b.Value())
}

func TestBufferClamp(t *testing.T) {
	b := NewBuffer("ab")
	b.SetCursor(Pos{Line: 9, Col: 9})
	assert.Equal(t, Pos{Col: 2}, b.Cursor())
	assert.Equal(t, "", b.Line(5))
}
