package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/preview"
)

// phoneContentWidth is the usable width inside the phone frame
const phoneContentWidth = PhoneWidth - 4

// RenderPhone draws a preview descriptor as a mobile screen.
func RenderPhone(d preview.Descriptor) string {
	var body string
	switch d.Screen {
	case preview.ScreenPostView:
		body = renderPostScreen(d)
	case preview.ScreenComments:
		body = renderCommentsScreen(d)
	case preview.ScreenMessaging:
		body = renderMessagingScreen(d)
	default:
		body = renderSelectionScreen()
	}

	return PhoneFrameStyle.Render(body)
}

func phoneTitle(title string) string {
	line := PhoneTitleStyle.Render(title)
	return lipgloss.JoinVertical(lipgloss.Left, line, PhoneMutedStyle.Render(strings.Repeat("─", phoneContentWidth)))
}

func renderSelectionScreen() string {
	hint := PhoneMutedStyle.Width(phoneContentWidth).Align(lipgloss.Center).
		Render("Pick a post to see how the automation looks on a phone")
	return lipgloss.JoinVertical(lipgloss.Left,
		phoneTitle(preview.ScreenSelection.Title()),
		"",
		hint,
		"",
	)
}

func postHeader(p *catalog.Post) string {
	return PhoneAvatarStyle.Render(preview.Initial(p.Username)) + " " + PhoneUsernameStyle.Render(p.Username)
}

func renderPostScreen(d preview.Descriptor) string {
	p := d.Post
	image := PhoneImageStyle.Width(phoneContentWidth-2).Height(5).
		Render("\n\n" + p.ImageRef)

	caption := lipgloss.NewStyle().Width(phoneContentWidth).
		Render(PhoneUsernameStyle.Render(p.Username) + " " + p.Caption)

	return lipgloss.JoinVertical(lipgloss.Left,
		postHeader(p),
		image,
		PhoneUsernameStyle.Render(preview.FormatLikes(p.LikeCount)),
		caption,
		PhoneMutedStyle.Render(preview.FormatCommentLink(p.CommentCount)),
	)
}

func renderCommentsScreen(d preview.Descriptor) string {
	lines := []string{phoneTitle(d.Screen.Title())}
	if d.Post != nil {
		lines = append(lines, postHeader(d.Post)+" "+PhoneMutedStyle.Render(truncate(d.Post.Caption, phoneContentWidth-lipgloss.Width(d.Post.Username)-6)), "")
	}

	for _, c := range d.Comments {
		name := PhoneUsernameStyle.Render(c.Username)
		text := c.Text
		if c.IsOwn() {
			text = OwnCommentStyle.Render(text)
		}
		line := lipgloss.NewStyle().Width(phoneContentWidth - 4).
			Render(name + " " + text + " " + PhoneMutedStyle.Render(c.Timestamp))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, PhoneAvatarStyle.Render(preview.Initial(c.Username)), " ", line))
	}

	if d.KeywordDraft != "" {
		lines = append(lines, "", PhoneMutedStyle.Render("› "+truncate(d.KeywordDraft, phoneContentWidth-2)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMessagingScreen(d preview.Descriptor) string {
	lines := []string{phoneTitle("@" + d.BotName)}

	bubbleWidth := phoneContentWidth * 3 / 4
	openingDone := false
	for i, m := range d.Messages {
		if m.FromBot() {
			lines = append(lines, BotBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(m.Text, bubbleWidth-2)))

			// The call to action sits under the last bot greeting
			next := i + 1
			if !openingDone && (next == len(d.Messages) || !d.Messages[next].FromBot()) {
				lines = append(lines, ButtonStyle.Width(bubbleWidth-2).Render(catalog.OpeningButtonLabel))
				openingDone = true
			}
			continue
		}

		bubble := UserBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(m.Text, bubbleWidth-2))
		lines = append(lines, lipgloss.PlaceHorizontal(phoneContentWidth, lipgloss.Right, bubble))
	}

	if d.MessageDraft != "" {
		lines = append(lines, "", PhoneMutedStyle.Render("› "+truncate(d.MessageDraft, phoneContentWidth-2)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return fmt.Sprintf("%s…", string(r))
}
