package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ██████╗  ██████╗ ███╗   ██╗██╗ █████╗ ██╗
 ██╔══██╗██╔═══██╗████╗  ██║██║██╔══██╗██║
 ██║  ██║██║   ██║██╔██╗ ██║██║███████║██║
 ██║  ██║██║   ██║██║╚██╗██║██║██╔══██║██║
 ██████╔╝╚██████╔╝██║ ╚████║██║██║  ██║██║
 ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚═╝╚═╝  ╚═╝╚═╝`

const bannerSubtitle = "Forum in your terminal • Write in Markdown"

// RenderBanner returns the logo with the subtitle and a rule centered
// underneath it.
func RenderBanner() string {
	art := strings.Join(splitLines(bannerArt), "\n")
	block := max(lipgloss.Width(art), lipgloss.Width(bannerSubtitle))
	centered := lipgloss.NewStyle().Width(block).Align(lipgloss.Center)

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(ColorPrimary).Render(art),
		"",
		centered.Foreground(ColorMuted).Render(bannerSubtitle),
		centered.Foreground(ColorBorder).Render(strings.Repeat("─", lipgloss.Width(bannerSubtitle))),
	) + "\n"
}

// splitLines splits s on newlines, dropping empty lines.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
