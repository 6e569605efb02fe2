package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/composer"
	"github.com/doniai/doniai-cli/internal/ui/components"
)

// The side preview takes about a third of the feed, within [38, 56] cells.
const (
	previewMinWidth     = 38
	previewMaxWidth     = 56
	previewExcerptLines = 6
)

func preferredPreviewWidth(contentWidth int) int {
	return min(max(contentWidth/3, previewMinWidth), previewMaxWidth)
}

// renderPostPreview is the side panel next to the feed table: title,
// metadata, then the first lines of the body.
func renderPostPreview(p *api.Post, width int) string {
	if p == nil || width <= 0 {
		return ""
	}
	inner := max(width-paneFrameWidth, 10)

	var lines []string
	for _, l := range wrapLine(components.SanitizeOneLine(p.Title), inner) {
		lines = append(lines, SelectedStyle.Render(l))
	}
	lines = append(lines, "",
		previewRow("Author", p.Author, inner),
		previewRow("Category", p.Category, inner),
		previewRow("Tags", strings.Join(composer.ParseTags(p.Tags), ", "), inner),
		previewRow("Access", api.ReadLimitLabel(p.ReadLimit), inner),
		previewRow("Stats", fmt.Sprintf("%d likes · %d favorites · %d replies", p.Likes, p.Favorites, p.Replies), inner),
		previewRow("Posted", formatDate(p.CreatedAt), inner),
		"",
	)

	body := components.SanitizeOneLine(htmlToText(p.Content))
	excerpt := wrapLine(body, inner)
	if len(excerpt) > previewExcerptLines {
		excerpt = excerpt[:previewExcerptLines]
		last := &excerpt[previewExcerptLines-1]
		*last = runewidth.Truncate(*last, inner-1, "") + "…"
	}
	for _, l := range excerpt {
		lines = append(lines, MutedStyle.Render(l))
	}
	return components.PaneBox("", strings.Join(lines, "\n"), width, false)
}

func previewRow(label, value string, width int) string {
	if value == "" {
		value = "-"
	}
	room := max(width-runewidth.StringWidth(label)-2, 4)
	return MetaKeyStyle.Render(label) + MutedStyle.Render(": ") + NormalStyle.Render(components.ClampTextWidth(value, room))
}

// wrapLine cuts one line into pieces at most width cells wide. A space
// landing at the start of a piece is dropped.
func wrapLine(s string, width int) []string {
	if s == "" || width <= 0 {
		return nil
	}
	var out []string
	var cur strings.Builder
	used := 0
	for _, r := range s {
		w := max(runewidth.RuneWidth(r), 1)
		if used > 0 && used+w > width {
			out = append(out, strings.TrimRight(cur.String(), " "))
			cur.Reset()
			used = 0
			if r == ' ' {
				continue
			}
		}
		cur.WriteRune(r)
		used += w
	}
	if cur.Len() > 0 {
		out = append(out, strings.TrimRight(cur.String(), " "))
	}
	return out
}
