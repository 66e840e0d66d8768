package automation

import (
	"strings"

	"github.com/muurk/autodm/internal/catalog"
)

// Builder provides a fluent API for assembling an automation Config.
// Keywords are de-duplicated case-insensitively while keeping first-seen order.
//
// Example usage:
//
//	cfg, err := automation.NewBuilder().
//	    SetPost(post).
//	    AddKeywords("link, info").
//	    SetOpeningMessage(catalog.DefaultGreetings()...).
//	    AddCustomMessage("Here is the link!").
//	    Build()
type Builder struct {
	postID       string
	postUsername string

	keywords []string
	seen     map[string]bool

	botName string
	opening []string
	button  string
	custom  []string
}

// NewBuilder creates an empty builder using DefaultBotName.
func NewBuilder() *Builder {
	return &Builder{
		seen:    make(map[string]bool),
		botName: DefaultBotName,
	}
}

// SetPost sets the post whose comments trigger the automation.
func (b *Builder) SetPost(p catalog.Post) *Builder {
	b.postID = p.ID
	b.postUsername = p.Username
	return b
}

// AddKeywords adds comma-separated trigger words.
// Blank entries are skipped and repeated words are ignored.
func (b *Builder) AddKeywords(text string) *Builder {
	for _, kw := range SplitKeywords(text) {
		key := strings.ToLower(kw)
		if b.seen[key] {
			continue
		}
		b.seen[key] = true
		b.keywords = append(b.keywords, kw)
	}
	return b
}

// SetBotName sets the account name that sends the DMs.
func (b *Builder) SetBotName(name string) *Builder {
	b.botName = name
	return b
}

// SetOpeningMessage replaces the opening DM lines.
func (b *Builder) SetOpeningMessage(lines ...string) *Builder {
	b.opening = append([]string(nil), lines...)
	return b
}

// SetOpeningButton sets the call-to-action label attached to the opening DM.
func (b *Builder) SetOpeningButton(label string) *Builder {
	b.button = label
	return b
}

// AddCustomMessage appends a custom follow-up message. Blank text is ignored.
func (b *Builder) AddCustomMessage(text string) *Builder {
	if text = strings.TrimSpace(text); text != "" {
		b.custom = append(b.custom, text)
	}
	return b
}

// Validate checks that the assembled configuration is complete.
func (b *Builder) Validate() error {
	if b.postID == "" {
		return NewValidationError("post_id", "a post must be selected")
	}
	if strings.TrimSpace(b.botName) == "" {
		return NewValidationError("bot_name", "bot name cannot be empty")
	}
	if strings.TrimSpace(strings.Join(b.opening, "")) == "" {
		return NewValidationError("opening_message", "opening message cannot be empty")
	}
	return nil
}

// Build creates the Config from the builder's state.
// Returns an error if validation fails.
func (b *Builder) Build() (*Config, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	cfg := &Config{
		PostID:         b.postID,
		PostUsername:   b.postUsername,
		Keywords:       append([]string{}, b.keywords...),
		BotName:        b.botName,
		OpeningMessage: strings.Join(b.opening, "\n"),
		OpeningButton:  b.button,
		CustomMessages: append([]string{}, b.custom...),
	}
	if n := len(b.custom); n > 0 {
		cfg.CustomMessage = b.custom[n-1]
	}

	return cfg, nil
}

// Reset clears all state except the bot name.
func (b *Builder) Reset() *Builder {
	b.postID = ""
	b.postUsername = ""
	b.keywords = nil
	b.seen = make(map[string]bool)
	b.opening = nil
	b.button = ""
	b.custom = nil
	return b
}

// SplitKeywords splits comma-separated input into trimmed, non-empty words.
func SplitKeywords(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Assemble builds a Config from the entities of a finished session:
// keywords come from the comments authored during the session, the opening message
// from the bot's messages and the custom messages from the user's.
func Assemble(post catalog.Post, comments []catalog.Comment, messages []catalog.Message, botName string) (*Config, error) {
	b := NewBuilder().SetPost(post).SetOpeningButton(catalog.OpeningButtonLabel)
	if botName != "" {
		b.SetBotName(botName)
	}

	for _, c := range comments {
		if c.IsOwn() {
			b.AddKeywords(c.Text)
		}
	}

	var opening []string
	for _, m := range messages {
		if m.FromBot() {
			opening = append(opening, m.Text)
		} else {
			b.AddCustomMessage(m.Text)
		}
	}
	b.SetOpeningMessage(opening...)

	return b.Build()
}
