package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/autodm/internal/version"
)

// Application branding constants
const (
	AppName   = "AUTODM · COMMENT TO DM AUTOMATION"
	GitHubURL = "github.com/muurk/autodm"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Get().Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 72 // Minimum supported terminal width
	MinTerminalHeight = 24
	DefaultBoxPadding = 2 // Default padding inside boxes
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Status line under the panels
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)
)

// Configurator panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	FocusedPanelStyle = PanelStyle.
				BorderForeground(PrimaryColor)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	PanelHintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Width(14).
			Align(lipgloss.Center)

	CursorTileStyle = TileStyle.
			BorderForeground(PrimaryColor).
			Bold(true)

	ChosenTileStyle = TileStyle.
			BorderForeground(HighlightColor).
			Foreground(HighlightColor)

	CursorMarkerStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	LockedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ProBadgeStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	KeywordChipStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 1).
				MarginRight(1)

	OpeningDMStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(SubtleColor).
			PaddingLeft(1)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// BuildHeaderContent creates header content with app name, version and URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen with the application header, a
// footer carrying the help text and an outer border filling the terminal.
//
//	func (m Model) View() string {
//	    return RenderApplicationContainer(m.buildContent(), m.Help.View(m.Keys), m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	terminalWidth = max(terminalWidth, MinTerminalWidth)
	terminalHeight = max(terminalHeight, MinTerminalHeight)

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(BuildHeaderContent())

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(HelpStyle.Render(footerText))

	body := lipgloss.NewStyle().
		Width(terminalWidth - 4).
		Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// ContentHeight is the height left for a screen's content inside the container
func ContentHeight(terminalHeight int) int {
	// Outer border, header with divider, footer with divider
	return max(terminalHeight, MinTerminalHeight) - 6
}

// SafeModalWidth returns requestedWidth capped so the modal never overflows the terminal
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := max(terminalWidth-4, 40)
	return min(requestedWidth, maxWidth)
}

// RenderModal centres modal content over a dimmed screen.
func RenderModal(modalContent string, terminalWidth int, terminalHeight int) string {
	return lipgloss.Place(
		max(terminalWidth, MinTerminalWidth),
		max(terminalHeight, MinTerminalHeight),
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}
