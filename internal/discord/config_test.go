package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	if config.Token != "" {
		t.Errorf("Expected empty token, got %q", config.Token)
	}

	if config.HelpCommand != ".help" {
		t.Errorf("Expected HelpCommand to be %q, got %q", ".help", config.HelpCommand)
	}

	if config.AppID != "" || config.GuildID != "" {
		t.Errorf("Expected empty AppID and GuildID, got %q and %q", config.AppID, config.GuildID)
	}

	expectedIntents := discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	if config.Intents != expectedIntents {
		t.Errorf("Expected Intents to be %d, got %d", expectedIntents, config.Intents)
	}
}
