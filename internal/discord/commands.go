package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Names of the application commands and their options.
const (
	CommandRegisterSeries   = "register-series"
	CommandUnregisterSeries = "unregister-series"
	CommandGetSeries        = "get-series"

	OptionSeries = "series"
	OptionUser   = "user"
)

// commandRegistrar abstracts the discordgo.Session method used to register commands.
// *discordgo.Session satisfies this interface.
type commandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Commands returns the application command definitions served by the bot.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandRegisterSeries,
			Description: "Registers the given series that you wish to be warned about!",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OptionSeries,
					Description: "The series you wish to be warned about.",
					Required:    true,
				},
			},
		},
		{
			Name:        CommandUnregisterSeries,
			Description: "Unregisters a given series that you have registered!",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OptionSeries,
					Description: "The series you wish to unregister.",
					Required:    true,
				},
			},
		},
		{
			Name:        CommandGetSeries,
			Description: "Gets the registered series from a given user!",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        OptionUser,
					Description: "The given user.",
					Required:    true,
				},
			},
		},
	}
}

// RegisterCommands replaces the application's commands in the configured guild with Commands().
func RegisterCommands(registrar commandRegistrar, config *Config) ([]*discordgo.ApplicationCommand, error) {
	if config.AppID == "" {
		return nil, ErrEmptyAppID
	}

	registered, err := registrar.ApplicationCommandBulkOverwrite(config.AppID, config.GuildID, Commands())
	if err != nil {
		return nil, fmt.Errorf("failed to register application commands: %w", err)
	}
	return registered, nil
}
