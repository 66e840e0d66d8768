package automation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode
const (
	FormatText     = "text"
	FormatCompact  = "compact"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatDetailed = "detailed"
)

// Formats lists every format Encode accepts
var Formats = []string{FormatText, FormatCompact, FormatJSON, FormatYAML, FormatDetailed}

// ValidFormat reports whether Encode accepts format
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Summary returns a one-line summary of the automation
func (c *Config) Summary() string {
	trigger := "any comment"
	if c.HasKeywords() {
		trigger = fmt.Sprintf("comments with %s", quoteAll(c.Keywords))
	}
	return fmt.Sprintf("@%s post %s: %s → DM from @%s", c.PostUsername, c.PostID, trigger, c.BotName)
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (c *Config) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Post:     %s (@%s)\n", c.PostID, c.PostUsername))
	if c.HasKeywords() {
		b.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(c.Keywords, ", ")))
	} else {
		b.WriteString("Keywords: (any comment)\n")
	}
	b.WriteString(fmt.Sprintf("Sender:   @%s\n", c.BotName))
	b.WriteString(fmt.Sprintf("Custom:   %d message(s)\n", len(c.CustomMessages)))

	return b.String()
}

// FormatDetailed returns a comprehensive formatted string with every section
func (c *Config) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Trigger ===\n")
	b.WriteString(fmt.Sprintf("When someone comments on post %s by @%s\n", c.PostID, c.PostUsername))
	if c.HasKeywords() {
		b.WriteString(fmt.Sprintf("And the comment has: %s\n", quoteAll(c.Keywords)))
	} else {
		b.WriteString("And the comment has: (any words)\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Opening DM ===\n")
	for _, line := range strings.Split(c.OpeningMessage, "\n") {
		b.WriteString("  " + line + "\n")
	}
	if c.OpeningButton != "" {
		b.WriteString(fmt.Sprintf("  [%s]\n", c.OpeningButton))
	}
	b.WriteString("\n")

	b.WriteString("=== Custom Messages ===\n")
	if len(c.CustomMessages) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, msg := range c.CustomMessages {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, msg))
	}

	return b.String()
}

// Encode writes the config to w in the given format.
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	case FormatCompact:
		_, err := io.WriteString(w, c.FormatCompact())
		return err

	case FormatText, FormatDetailed, "":
		_, err := io.WriteString(w, c.FormatDetailed())
		return err

	default:
		return fmt.Errorf("%w: %q (expected text, compact, json or yaml)", ErrUnknownFormat, format)
	}
}

// quoteAll quotes each word and joins them with commas
func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return strings.Join(quoted, ", ")
}
