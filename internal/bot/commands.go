package bot

import (
	"context"

	"github.com/oklahomer/go-sarah/v4"
	"github.com/sofiwisher/sofiwisher/internal/discord"
	"github.com/sofiwisher/sofiwisher/internal/match"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
	"github.com/sofiwisher/sofiwisher/internal/pipeline"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

// Reader reads the text of each card of a drop image.
// *pipeline.Pipeline satisfies this interface.
type Reader interface {
	Run(ctx context.Context, url string) ([]ocr.Text, error)
}

var _ Reader = (*pipeline.Pipeline)(nil)

// Matcher finds the users to notify for a drop.
// *match.Matcher satisfies this interface.
type Matcher interface {
	Match(texts []ocr.Text, records []*store.Record) []match.Result
}

var _ Matcher = (*match.Matcher)(nil)

// Commands holds what the bot's commands depend on.
type Commands struct {
	config  *Config
	store   store.Store
	reader  Reader
	matcher Matcher
}

// New creates Commands working on the given store, drop reader and matcher.
func New(config *Config, s store.Store, reader Reader, matcher Matcher) *Commands {
	return &Commands{
		config:  config,
		store:   s,
		reader:  reader,
		matcher: matcher,
	}
}

// Props returns the sarah.CommandProps of every command.
func (c *Commands) Props() []*sarah.CommandProps {
	return []*sarah.CommandProps{
		sarah.NewCommandPropsBuilder().
			BotType(discord.DISCORD).
			Identifier("drop").
			MatchFunc(c.isDrop).
			Func(c.Drop).
			Instruction("Drops are read automatically; you are mentioned when one shows a series you registered.").
			MustBuild(),

		sarah.NewCommandPropsBuilder().
			BotType(discord.DISCORD).
			Identifier(discord.CommandRegisterSeries).
			MatchFunc(isSlashCommand(discord.CommandRegisterSeries)).
			Func(c.Register).
			Instruction("Use /register-series <series> to be warned when that series is dropped.").
			MustBuild(),

		sarah.NewCommandPropsBuilder().
			BotType(discord.DISCORD).
			Identifier(discord.CommandUnregisterSeries).
			MatchFunc(isSlashCommand(discord.CommandUnregisterSeries)).
			Func(c.Unregister).
			Instruction("Use /unregister-series <series> to stop being warned about that series.").
			MustBuild(),

		sarah.NewCommandPropsBuilder().
			BotType(discord.DISCORD).
			Identifier(discord.CommandGetSeries).
			MatchFunc(isSlashCommand(discord.CommandGetSeries)).
			Func(c.Get).
			Instruction("Use /get-series <user> to list the series a user registered.").
			MustBuild(),
	}
}

func (c *Commands) isDrop(input sarah.Input) bool {
	in, ok := input.(*discord.Input)
	if !ok || in.Event == nil {
		return false
	}
	return c.config.IsDrop(in.Event.Message)
}

func isSlashCommand(name string) func(sarah.Input) bool {
	return func(input sarah.Input) bool {
		in, ok := input.(*discord.SlashInput)
		return ok && in.CommandName() == name
	}
}
