package composer

import (
	"fmt"
	"regexp"
	"strings"
)

// Action is a toolbar command. The set is closed.
type Action int

const (
	ActionBold Action = iota
	ActionItalic
	ActionStrikethrough
	ActionHeading
	ActionOrderedList
	ActionUnorderedList
	ActionQuote
	ActionLink
	ActionImage
	ActionCodeBlock
	ActionTable
	ActionHorizontalRule
	ActionUndo
	ActionRedo
	ActionClear
	actionCount
)

var actionNames = [actionCount]string{
	"bold", "italic", "strikethrough", "heading", "orderedList", "unorderedList",
	"quote", "link", "image", "codeBlock", "table", "horizontalRule",
	"undo", "redo", "clear",
}

var actionLabels = [actionCount]string{
	"Bold", "Italic", "Strike", "Heading", "OL", "UL",
	"Quote", "Link", "Image", "Code", "Table", "Rule",
	"Undo", "Redo", "Clear",
}

// Actions lists every toolbar action in toolbar order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves a toolbar action by name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Action(i), true
		}
	}
	return 0, false
}

func (a Action) valid() bool { return a >= 0 && a < actionCount }

func (a Action) String() string {
	if !a.valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Label is the short toolbar caption.
func (a Action) Label() string {
	if !a.valid() {
		return "?"
	}
	return actionLabels[a]
}

// Templates inserted by the insert-only actions.
const (
	ImageTemplate          = "![alt text](image-url)"
	CodeBlockTemplate      = "```\ncode\n```"
	TableTemplate          = "| Column 1 | Column 2 | Column 3 |\n| --- | --- | --- |\n| Cell 1 | Cell 2 | Cell 3 |"
	HorizontalRuleTemplate = "\n---\n"
	linkPlaceholder        = "[text](url)"
)

type wrapSpec struct {
	open, close string
	// cursor offset from the end of the inserted empty pair
	back int
}

var wraps = map[Action]wrapSpec{
	ActionBold:          {open: "**", close: "**", back: 2},
	ActionItalic:        {open: "*", close: "*", back: 1},
	ActionStrikethrough: {open: "~~", close: "~~", back: 2},
	ActionLink:          {open: "[", close: "](url)", back: 4},
}

type prefixSpec struct {
	match  *regexp.Regexp
	prefix string
}

var prefixes = map[Action]prefixSpec{
	ActionHeading:       {match: regexp.MustCompile(`^#+\s*`), prefix: "# "},
	ActionOrderedList:   {match: regexp.MustCompile(`^\d+\.\s`), prefix: "1. "},
	ActionUnorderedList: {match: regexp.MustCompile(`^[*\-+]\s`), prefix: "- "},
	ActionQuote:         {match: regexp.MustCompile(`^>\s`), prefix: "> "},
}

var inserts = map[Action]string{
	ActionImage:          ImageTemplate,
	ActionCodeBlock:      CodeBlockTemplate,
	ActionTable:          TableTemplate,
	ActionHorizontalRule: HorizontalRuleTemplate,
}

// Dispatch applies exactly one transform for a to the buffer and returns
// focus to it. Line-prefix actions only touch the cursor's line.
func Dispatch(b *Buffer, a Action) error {
	if !a.valid() {
		return fmt.Errorf("unknown toolbar action %d", int(a))
	}
	defer b.Focus()

	if w, ok := wraps[a]; ok {
		applyWrap(b, a, w)
		return nil
	}
	if p, ok := prefixes[a]; ok {
		togglePrefix(b, p)
		return nil
	}
	if tmpl, ok := inserts[a]; ok {
		b.ReplaceSelection(tmpl)
		return nil
	}

	switch a {
	case ActionUndo:
		b.Undo()
	case ActionRedo:
		b.Redo()
	case ActionClear:
		b.SetValue("")
	}
	return nil
}

func applyWrap(b *Buffer, a Action, w wrapSpec) {
	sel, ok := b.Selection()
	if !ok {
		if a == ActionLink {
			end := b.ReplaceRange(Range{Start: b.Cursor(), End: b.Cursor()}, linkPlaceholder)
			b.SetCursor(Pos{Line: end.Line, Col: end.Col - w.back})
			return
		}
		end := b.ReplaceRange(Range{Start: b.Cursor(), End: b.Cursor()}, w.open+w.close)
		b.SetCursor(Pos{Line: end.Line, Col: end.Col - w.back})
		return
	}

	text := b.TextRange(sel)
	if outer, ok := surroundedBy(b, sel, w); ok {
		b.ReplaceRange(outer, text)
		b.SetSelection(Range{Start: outer.Start, End: advance(outer.Start, text)})
		return
	}
	if inner, ok := trimPair(text, w); ok {
		b.ReplaceRange(sel, inner)
		b.SetSelection(Range{Start: sel.Start, End: advance(sel.Start, inner)})
		return
	}

	b.ReplaceRange(sel, w.open+text+w.close)
	start := advance(sel.Start, w.open)
	b.SetSelection(Range{Start: start, End: advance(start, text)})
}

// surroundedBy reports whether the markers sit directly around sel and
// returns the range including them. A single-rune marker that is itself
// part of a doubled run (italic inside bold) does not count.
func surroundedBy(b *Buffer, sel Range, w wrapSpec) (Range, bool) {
	if sel.Start.Line != sel.End.Line {
		return Range{}, false
	}
	line := []rune(b.Line(sel.Start.Line))
	opening, closing := []rune(w.open), []rune(w.close)
	startCol := sel.Start.Col - len(opening)
	endCol := sel.End.Col + len(closing)
	if startCol < 0 || endCol > len(line) {
		return Range{}, false
	}
	if string(line[startCol:sel.Start.Col]) != w.open || string(line[sel.End.Col:endCol]) != w.close {
		return Range{}, false
	}
	if len(opening) == 1 && len(closing) == 1 {
		if startCol > 0 && line[startCol-1] == opening[0] {
			return Range{}, false
		}
		if endCol < len(line) && line[endCol] == closing[0] {
			return Range{}, false
		}
	}
	return Range{
		Start: Pos{Line: sel.Start.Line, Col: startCol},
		End:   Pos{Line: sel.End.Line, Col: endCol},
	}, true
}

func trimPair(text string, w wrapSpec) (string, bool) {
	if len(text) < len(w.open)+len(w.close) {
		return "", false
	}
	if !strings.HasPrefix(text, w.open) || !strings.HasSuffix(text, w.close) {
		return "", false
	}
	inner := text[len(w.open) : len(text)-len(w.close)]
	if len(w.open) == 1 && (strings.HasPrefix(inner, w.open) || strings.HasSuffix(inner, w.close)) {
		return "", false
	}
	return inner, true
}

func togglePrefix(b *Buffer, p prefixSpec) {
	cur := b.Cursor()
	line := b.Line(cur.Line)
	var next string
	if loc := p.match.FindStringIndex(line); loc != nil {
		next = line[loc[1]:]
	} else {
		next = p.prefix + line
	}
	delta := len([]rune(next)) - len([]rune(line))
	b.ReplaceLine(cur.Line, next)
	col := cur.Col + delta
	if col < 0 {
		col = 0
	}
	b.SetCursor(Pos{Line: cur.Line, Col: col})
}

// advance returns the position reached after writing text at p.
func advance(p Pos, text string) Pos {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return Pos{Line: p.Line, Col: p.Col + len([]rune(text))}
	}
	return Pos{Line: p.Line + len(parts) - 1, Col: len([]rune(parts[len(parts)-1]))}
}
