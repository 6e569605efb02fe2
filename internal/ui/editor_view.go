package ui

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/doniai/doniai-cli/internal/composer"
)

// editorView is the scroll window over a composer buffer.
type editorView struct {
	top  int
	left int
}

// follow scrolls so the cursor stays inside a width x height window.
func (v *editorView) follow(b *composer.Buffer, width, height int) {
	c := b.Cursor()
	if height > 0 {
		if c.Line < v.top {
			v.top = c.Line
		}
		if c.Line >= v.top+height {
			v.top = c.Line - height + 1
		}
	}
	if width > 0 {
		x := displayWidth([]rune(b.Line(c.Line))[:c.Col])
		if x < v.left {
			v.left = x
		}
		if x >= v.left+width {
			v.left = x - width + 1
		}
	}
}

func gutterWidth(b *composer.Buffer, lineNumbers bool) int {
	if !lineNumbers {
		return 0
	}
	return len(strconv.Itoa(b.LineCount())) + 1
}

// render draws the window. Lines past the end of the buffer show "~".
func (v editorView) render(b *composer.Buffer, width, height int, lineNumbers, focused bool) string {
	gutter := gutterWidth(b, lineNumbers)
	textWidth := width - gutter
	if textWidth < 1 {
		textWidth = 1
	}
	cur := b.Cursor()
	sel, hasSel := b.Selection()

	out := make([]string, 0, height)
	for i := v.top; i < v.top+height; i++ {
		if i >= b.LineCount() {
			out = append(out, LineNumberStyle.Render("~"))
			continue
		}
		prefix := ""
		if gutter > 0 {
			prefix = LineNumberStyle.Render(padLeft(strconv.Itoa(i+1), gutter-1) + " ")
		}
		runes := []rune(b.Line(i))
		cursorCol := -1
		if focused && i == cur.Line {
			cursorCol = cur.Col
		}
		from, to := -1, -1
		if hasSel && i >= sel.Start.Line && i <= sel.End.Line {
			from, to = 0, len(runes)
			if i == sel.Start.Line {
				from = sel.Start.Col
			}
			if i == sel.End.Line {
				to = sel.End.Col
			}
		}
		out = append(out, prefix+renderEditorLine(runes, v.left, textWidth, cursorCol, from, to))
	}
	return strings.Join(out, "\n")
}

type runStyle int

const (
	runPlain runStyle = iota
	runSelected
	runCursor
)

// renderEditorLine draws the part of a line visible from display column left,
// at most width columns wide, marking the cursor and the selected columns
// [from, to).
func renderEditorLine(runes []rune, left, width, cursorCol, from, to int) string {
	var b strings.Builder
	var run strings.Builder
	style := runPlain
	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch style {
		case runSelected:
			b.WriteString(SelectionStyle.Render(run.String()))
		case runCursor:
			b.WriteString(CursorStyle.Render(run.String()))
		default:
			b.WriteString(NormalStyle.Render(run.String()))
		}
		run.Reset()
	}

	x, used := 0, 0
	for idx, r := range runes {
		rw := runewidth.RuneWidth(r)
		if unicode.IsControl(r) || rw < 1 {
			r, rw = ' ', 1
		}
		if x < left {
			x += rw
			continue
		}
		if used+rw > width {
			break
		}
		next := runPlain
		switch {
		case idx == cursorCol:
			next = runCursor
		case idx >= from && idx < to:
			next = runSelected
		}
		if next != style {
			flush()
			style = next
		}
		run.WriteRune(r)
		x += rw
		used += rw
	}
	flush()
	if cursorCol == len(runes) && displayWidth(runes) >= left && used < width {
		b.WriteString(CursorStyle.Render(" "))
	}
	return b.String()
}

func displayWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		rw := runewidth.RuneWidth(r)
		if unicode.IsControl(r) || rw < 1 {
			rw = 1
		}
		w += rw
	}
	return w
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
