package components

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors every component draws with.
type Palette struct {
	Border      lipgloss.Color
	Accent      lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Label       lipgloss.Color
	ErrorBorder lipgloss.Color
	ErrorHeader lipgloss.Color
	ErrorBody   lipgloss.Color
	KeyCapFg    lipgloss.Color
	KeyCapBg    lipgloss.Color
	RowBg       lipgloss.Color
}

var (
	DarkPalette = Palette{
		Border:      lipgloss.Color("#273540"),
		Accent:      lipgloss.Color("#7f57b4"),
		Text:        lipgloss.Color("#d7d9da"),
		Muted:       lipgloss.Color("#9ba0bf"),
		Label:       lipgloss.Color("#436b77"),
		ErrorBorder: lipgloss.Color("#7a2f3a"),
		ErrorHeader: lipgloss.Color("#e06c75"),
		ErrorBody:   lipgloss.Color("#d6b5b5"),
		KeyCapFg:    lipgloss.Color("#16161d"),
		KeyCapBg:    lipgloss.Color("#888ba4"),
		RowBg:       lipgloss.Color("#1f2530"),
	}

	LightPalette = Palette{
		Border:      lipgloss.Color("#c5cbd3"),
		Accent:      lipgloss.Color("#6a3fa0"),
		Text:        lipgloss.Color("#24292f"),
		Muted:       lipgloss.Color("#6e7781"),
		Label:       lipgloss.Color("#2f6170"),
		ErrorBorder: lipgloss.Color("#cf222e"),
		ErrorHeader: lipgloss.Color("#a40e26"),
		ErrorBody:   lipgloss.Color("#82071e"),
		KeyCapFg:    lipgloss.Color("#ffffff"),
		KeyCapBg:    lipgloss.Color("#57606a"),
		RowBg:       lipgloss.Color("#eaeef2"),
	}
)

var current = DarkPalette

func init() {
	rebuildStyles()
}

// SetPalette switches every component style to p.
func SetPalette(p Palette) {
	current = p
	rebuildStyles()
}

func rebuildStyles() {
	p := current

	frameStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)
	frameActiveStyle = frameStyle.BorderForeground(p.Accent)
	frameTitleStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	mutedTextStyle = lipgloss.NewStyle().Foreground(p.Muted)
	valueTextStyle = lipgloss.NewStyle().Foreground(p.Text)
	labelTextStyle = lipgloss.NewStyle().Foreground(p.Label).Bold(true)
	errorFrameStyle = frameStyle.BorderForeground(p.ErrorBorder)
	errorTitleStyle = lipgloss.NewStyle().Foreground(p.ErrorHeader).Bold(true)
	errorTextStyle = lipgloss.NewStyle().Foreground(p.ErrorBody)

	hintDescStyle = lipgloss.NewStyle().Foreground(p.Muted)
	keyCapStyle = lipgloss.NewStyle().
		Foreground(p.KeyCapFg).
		Background(p.KeyCapBg).
		Bold(true).
		Padding(0, 1)
	segmentStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		MarginRight(1)

	dialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2).
		Width(dialogWidth)

	gridRuleStyle = lipgloss.NewStyle().Foreground(p.Border)
	gridActiveRowStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.RowBg).
		Bold(true)
	gridActiveSepStyle = gridRuleStyle.Background(p.RowBg)

	chipStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.RowBg).
		Padding(0, 1).
		MarginRight(1)
	chipActiveStyle = chipStyle.Foreground(p.KeyCapFg).Background(p.Accent).Bold(true)
}
