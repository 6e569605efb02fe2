package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestListEmpty(t *testing.T) {
	l := NewList(3)
	l.Move(1)
	l.Select(5)

	start, items := l.Window()
	assert.Equal(t, 0, start)
	assert.Empty(t, items)
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 0, l.Len())
}

func TestListMoveClampsAtEnds(t *testing.T) {
	l := NewList(10)
	l.SetItems(labels(3))

	l.Move(-1)
	assert.Equal(t, 0, l.Selected())
	l.Move(5)
	assert.Equal(t, 2, l.Selected())
}

func TestListWindowFollowsCursor(t *testing.T) {
	l := NewList(3)
	l.SetItems(labels(8))

	for i := 0; i < 4; i++ {
		l.Move(1)
	}
	start, items := l.Window()
	assert.Equal(t, 2, start)
	assert.Equal(t, []string{"c", "d", "e"}, items)

	l.Select(0)
	start, items = l.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, []string{"a", "b", "c"}, items)

	l.Select(100)
	start, items = l.Window()
	assert.Equal(t, 7, l.Selected())
	assert.Equal(t, 5, start)
	assert.Equal(t, []string{"f", "g", "h"}, items)
}

func TestListSetItemsResets(t *testing.T) {
	l := NewList(2)
	l.SetItems(labels(5))
	l.Select(4)

	l.SetItems(labels(2))
	start, items := l.Window()
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 0, start)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestListZeroHeightShowsOneRow(t *testing.T) {
	l := NewList(0)
	l.SetItems(labels(3))
	l.Move(2)
	start, items := l.Window()
	assert.Equal(t, 2, start)
	assert.Equal(t, []string{"c"}, items)
}
