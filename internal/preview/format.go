package preview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// FormatLikes renders a like count with thousands separators ("1,234 likes")
func FormatLikes(n int) string {
	return humanize.Comma(int64(n)) + " likes"
}

// FormatCommentLink renders the "View all N comments" line under a post
func FormatCommentLink(n int) string {
	return fmt.Sprintf("View all %s comments", humanize.Comma(int64(n)))
}

// Initial returns the upper-cased first letter of a username, used as avatar fallback
func Initial(username string) string {
	r, _ := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// Title returns the heading shown at the top of the preview screen
func (s Screen) Title() string {
	switch s {
	case ScreenSelection:
		return "Select a Post"
	case ScreenPostView:
		return "Post"
	case ScreenComments:
		return "Comments"
	case ScreenMessaging:
		return "Messages"
	default:
		return string(s)
	}
}
