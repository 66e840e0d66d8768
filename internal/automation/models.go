package automation

// DefaultBotName is the account that sends the automated DMs in the preview.
const DefaultBotName = "botspacehq"

// Config is the assembled automation produced when the user completes setup.
// It is the only value handed to the completion handler.
type Config struct {
	// Trigger
	PostID       string   `json:"post_id" yaml:"post_id"`
	PostUsername string   `json:"post_username" yaml:"post_username"`
	Keywords     []string `json:"keywords" yaml:"keywords"`

	// Reply
	BotName        string   `json:"bot_name" yaml:"bot_name"`
	OpeningMessage string   `json:"opening_message" yaml:"opening_message"`
	OpeningButton  string   `json:"opening_button,omitempty" yaml:"opening_button,omitempty"`
	CustomMessages []string `json:"custom_messages" yaml:"custom_messages"`

	// CustomMessage is the most recent custom message, empty when none was written
	CustomMessage string `json:"custom_message" yaml:"custom_message"`
}

// HasKeywords reports whether the trigger is restricted to specific words.
// Without keywords every comment on the post triggers the DM.
func (c *Config) HasKeywords() bool {
	return len(c.Keywords) > 0
}
