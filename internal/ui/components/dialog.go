package components

import "github.com/charmbracelet/lipgloss"

const dialogWidth = 40

var dialogStyle lipgloss.Style

const dialogHint = "y: confirm | n: cancel"

// ConfirmDialog renders a small yes/no prompt.
func ConfirmDialog(title, message string) string {
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		frameTitleStyle.Render(title),
		"",
		mutedTextStyle.Render(message),
		"",
		mutedTextStyle.Render(dialogHint),
	))
}

// ConfirmPreviewDialog asks for confirmation under a summary of what is
// about to happen.
func ConfirmPreviewDialog(title string, summary []TableRow, term int) string {
	body := mutedTextStyle.Render(dialogHint)
	if len(summary) > 0 {
		body = KeyValues(summary, BoxContentWidth(term)) + "\n\n" + body
	}
	return TitledBox(title, body, term)
}
