package catalog

import "fmt"

// Sender identifies who authored a chat message in the preview conversation.
type Sender string

const (
	// SenderBot marks messages sent by the automation account.
	SenderBot Sender = "automation-bot"
	// SenderUser marks messages written by the person configuring the automation.
	SenderUser Sender = "user"
)

// Authors and labels used for entries created during a session.
const (
	// CommentAuthor is the username attached to every comment submitted in the configurator.
	CommentAuthor = "you"

	// NowLabel is the display timestamp for entries created during the session.
	NowLabel = "now"

	// PlaceholderAvatar is the avatar reference used when nothing better is known.
	PlaceholderAvatar = "/placeholder.svg?height=24&width=24"
)

// Post is one selectable post from the catalog.
// Posts are created once when the store is built and are never mutated.
type Post struct {
	ID           string `json:"id" yaml:"id"`
	ImageRef     string `json:"image_ref" yaml:"image_ref"`
	Username     string `json:"username" yaml:"username"`
	Caption      string `json:"caption" yaml:"caption"`
	LikeCount    int    `json:"like_count" yaml:"like_count"`
	CommentCount int    `json:"comment_count" yaml:"comment_count"`
}

// String returns a short human-readable description of the post
func (p Post) String() string {
	return fmt.Sprintf("Post %s by @%s", p.ID, p.Username)
}

// Validate checks the catalog invariants for a single post.
func (p Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("post id cannot be empty")
	}
	if p.Username == "" {
		return fmt.Errorf("post %s: username cannot be empty", p.ID)
	}
	if p.LikeCount < 0 {
		return fmt.Errorf("post %s: like count must be non-negative, got %d", p.ID, p.LikeCount)
	}
	if p.CommentCount < 0 {
		return fmt.Errorf("post %s: comment count must be non-negative, got %d", p.ID, p.CommentCount)
	}
	return nil
}

// Comment is one entry in the comment thread shown under the selected post.
type Comment struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	AvatarRef string `json:"avatar_ref"`
	Timestamp string `json:"timestamp"` // Display label only ("2h", "now")
}

// IsOwn reports whether the comment was submitted during this session.
func (c Comment) IsOwn() bool {
	return c.Username == CommentAuthor
}

// Message is one chat bubble in the direct-message preview.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// FromBot reports whether the automation account sent the message.
func (m Message) FromBot() bool {
	return m.Sender == SenderBot
}
