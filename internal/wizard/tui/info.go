package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/logging"
)

// openingDMInfo explains the opening message shown in the messaging panel
var openingDMInfo = `# Why does an opening DM matter?

Instagram only lets an account message someone who has **interacted with it first**.
The opening DM asks the commenter to tap a button, and that tap opens the
conversation so the rest of your messages can be delivered.

- The greeting is sent the moment a matching comment arrives
- The **"` + catalog.OpeningButtonLabel + `"** button opens the conversation
- Your custom messages follow once the button is tapped

Keep the opening short: it is the only message everyone is guaranteed to see.
`

const infoModalWidth = 72

// renderInfo renders the opening DM explanation as terminal markdown.
// Rendering falls back to the raw markdown if glamour fails.
func renderInfo(terminalWidth int) string {
	width := SafeModalWidth(infoModalWidth, terminalWidth)

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width-6),
	)
	if err != nil {
		logging.Warn("Markdown renderer unavailable", zap.Error(err))
		return openingDMInfo
	}

	out, err := r.Render(openingDMInfo)
	if err != nil {
		logging.Warn("Failed to render info panel", zap.Error(err))
		return openingDMInfo
	}
	return strings.TrimRight(out, "\n")
}

// renderInfoModal frames rendered markdown for RenderModal
func renderInfoModal(rendered string, terminalWidth int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		rendered,
		"",
		HelpStyle.Render("Press any key to close"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2).
		Width(SafeModalWidth(infoModalWidth, terminalWidth)).
		Render(content)
}
