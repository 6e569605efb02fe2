package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui/components"
)

// --- Theme Colors ---

type palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Border     lipgloss.Color
	Badge      lipgloss.Color
}

var darkPalette = palette{
	Primary:    "#7f57b4", // purple
	Secondary:  "#436b77", // teal
	Accent:     "#a7754e", // warm
	Background: "#16161d",
	Text:       "#d7d9da",
	Muted:      "#9ba0bf",
	Success:    "#3f866b",
	Error:      "#e06c75",
	Warning:    "#c78854",
	Border:     "#273540",
	Badge:      "#888ba4",
}

var lightPalette = palette{
	Primary:    "#6a3fa0",
	Secondary:  "#2f6170",
	Accent:     "#9a5b24",
	Background: "#ffffff",
	Text:       "#24292f",
	Muted:      "#6e7781",
	Success:    "#1a7f37",
	Error:      "#cf222e",
	Warning:    "#9a6700",
	Border:     "#c5cbd3",
	Badge:      "#57606a",
}

var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorAccent     lipgloss.Color
	ColorBackground lipgloss.Color
	ColorText       lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorError      lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorBorder     lipgloss.Color
)

// --- Reusable Styles ---

var (
	BannerStyle       lipgloss.Style
	TabActiveStyle    lipgloss.Style
	TabInactiveStyle  lipgloss.Style
	SelectedStyle     lipgloss.Style
	NormalStyle       lipgloss.Style
	MutedStyle        lipgloss.Style
	SuccessStyle      lipgloss.Style
	ErrorStyle        lipgloss.Style
	WarningStyle      lipgloss.Style
	AccentStyle       lipgloss.Style
	HeaderStyle       lipgloss.Style
	BadgeStyle        lipgloss.Style
	DividerStyle      lipgloss.Style
	MetaKeyStyle      lipgloss.Style
	LineNumberStyle   lipgloss.Style
	CursorStyle       lipgloss.Style
	SelectionStyle    lipgloss.Style
	ToolbarStyle      lipgloss.Style
	ToolbarFocusStyle lipgloss.Style
)

var currentTheme = store.ThemeDark

func init() {
	ApplyTheme(store.ThemeDark)
}

// CurrentTheme returns the theme applied last.
func CurrentTheme() string {
	return currentTheme
}

// ApplyTheme switches every style, including the shared components, to the
// named theme. Unknown names fall back to dark.
func ApplyTheme(theme string) {
	p, comp := darkPalette, components.DarkPalette
	currentTheme = store.ThemeDark
	if theme == store.ThemeLight {
		p, comp = lightPalette, components.LightPalette
		currentTheme = store.ThemeLight
	}
	components.SetPalette(comp)

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorAccent = p.Accent
	ColorBackground = p.Background
	ColorText = p.Text
	ColorMuted = p.Muted
	ColorSuccess = p.Success
	ColorError = p.Error
	ColorWarning = p.Warning
	ColorBorder = p.Border

	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().Foreground(ColorText)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		PaddingBottom(1)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(p.Badge).
		Bold(true).
		Padding(0, 1)

	DividerStyle = lipgloss.NewStyle().Foreground(ColorBorder)

	MetaKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	LineNumberStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	CursorStyle = lipgloss.NewStyle().Reverse(true)
	SelectionStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary)

	ToolbarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	ToolbarFocusStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorAccent).
		Bold(true).
		Padding(0, 1)
}
