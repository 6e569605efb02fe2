package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// TerminalStyle maps an app theme to a glamour standard style.
func TerminalStyle(theme string) string {
	if strings.EqualFold(strings.TrimSpace(theme), "light") {
		return "light"
	}
	return "dark"
}

// Terminal renders Markdown for display inside the TUI. It is never used
// for the published HTML.
func Terminal(src, theme string, width int) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(TerminalStyle(theme)),
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	out, err := r.Render(src)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
