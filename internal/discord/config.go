package discord

import "github.com/bwmarrin/discordgo"

// Config contains configuration variables for the Discord Adapter.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `json:"token" yaml:"token" env:"DISCORD_TOKEN" env-required:"true"`

	// AppID is the application ID that owns the slash commands.
	AppID string `json:"app_id" yaml:"app_id" env:"DISCORD_APP_ID"`

	// GuildID is the guild the slash commands are registered in.
	// When empty, commands are registered globally.
	GuildID string `json:"guild_id" yaml:"guild_id" env:"DISCORD_GUILD_ID"`

	// HelpCommand is the command string that triggers help.
	// When a user sends this exact string, the input is converted to sarah.HelpInput.
	HelpCommand string `json:"help_command" yaml:"help_command" env:"DISCORD_HELP_COMMAND"`

	// Intents declares the Gateway Intents the bot requires.
	Intents discordgo.Intent `json:"intents" yaml:"intents" env:"DISCORD_INTENTS"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Token is empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Token:       "",
		HelpCommand: ".help",
		Intents:     discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent,
	}
}
