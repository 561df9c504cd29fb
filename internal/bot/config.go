package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Config contains configuration variables for drop detection.
type Config struct {
	// DropBotID is the user ID of the bot posting drops. Nothing is treated as a drop when it is empty.
	DropBotID string `json:"drop_bot_id" yaml:"drop_bot_id" env:"DROP_BOT_ID"`

	// DropPhrase is the text a drop message contains.
	DropPhrase string `json:"drop_phrase" yaml:"drop_phrase" env:"DROP_PHRASE"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		DropPhrase: "is **dropping** cards",
	}
}

// IsDrop reports whether the message is a drop: posted by the drop bot, containing the drop phrase
// and carrying an image as its first attachment.
func (c *Config) IsDrop(m *discordgo.Message) bool {
	if m == nil || m.Author == nil || !m.Author.Bot {
		return false
	}

	if c.DropBotID == "" || m.Author.ID != c.DropBotID {
		return false
	}

	if !strings.Contains(m.Content, c.DropPhrase) {
		return false
	}

	return dropImageURL(m) != ""
}

func dropImageURL(m *discordgo.Message) string {
	if len(m.Attachments) == 0 {
		return ""
	}

	attachment := m.Attachments[0]
	if attachment == nil || !strings.HasPrefix(attachment.ContentType, "image/") {
		return ""
	}
	return attachment.URL
}
