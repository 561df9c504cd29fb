package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
	"github.com/sofiwisher/sofiwisher/internal/discord"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

const (
	msgRegistered       = "'%s' was registered successfully!"
	msgRegisterFailed   = "An error occurred while registering the series."
	msgNothingToRemove  = "You haven't registered any series yet."
	msgUnregistered     = "'%s' was unregistered successfully!"
	msgUnregisterFailed = "An error occurred while unregistering the series."
	msgNoSeries         = "The user %s hasn't registered any series yet."
	msgSeriesList       = "Series registered by %s: %s"
	msgGetFailed        = "An error occurred while fetching user series."
	msgEmptySeries      = "The series name must not be empty."
)

// Register adds the given series to the invoking user's watch-list.
func (c *Commands) Register(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
	in, ok := input.(*discord.SlashInput)
	if !ok {
		return nil, fmt.Errorf("unexpected input %T", input)
	}

	raw, _ := in.StringOption(discord.OptionSeries)
	label, err := store.NormalizeLabel(raw)
	if err != nil {
		return discord.NewResponse(input, msgEmptySeries)
	}

	if err := c.store.Register(ctx, in.UserID(), label); err != nil {
		logger.Errorf("Failed to register %q for %s: %+v", label, in.UserID(), err)
		return discord.NewResponse(input, msgRegisterFailed)
	}

	logger.Infof("User %s registered %q", in.UserID(), label)
	return discord.NewResponse(input, fmt.Sprintf(msgRegistered, label))
}

// Unregister removes the given series from the invoking user's watch-list.
func (c *Commands) Unregister(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
	in, ok := input.(*discord.SlashInput)
	if !ok {
		return nil, fmt.Errorf("unexpected input %T", input)
	}

	raw, _ := in.StringOption(discord.OptionSeries)
	label, err := store.NormalizeLabel(raw)
	if err != nil {
		return discord.NewResponse(input, msgEmptySeries)
	}

	err = c.store.Unregister(ctx, in.UserID(), label)
	switch {
	case errors.Is(err, store.ErrNothingRegistered):
		return discord.NewResponse(input, msgNothingToRemove)

	case err != nil:
		logger.Errorf("Failed to unregister %q for %s: %+v", label, in.UserID(), err)
		return discord.NewResponse(input, msgUnregisterFailed)
	}

	logger.Infof("User %s unregistered %q", in.UserID(), label)
	return discord.NewResponse(input, fmt.Sprintf(msgUnregistered, label))
}

// Get lists the series registered by the given user.
func (c *Commands) Get(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
	in, ok := input.(*discord.SlashInput)
	if !ok {
		return nil, fmt.Errorf("unexpected input %T", input)
	}

	user, ok := in.UserOption(discord.OptionUser)
	if !ok {
		logger.Warnf("get-series invoked by %s without a user", in.UserID())
		return discord.NewResponse(input, msgGetFailed)
	}

	series, err := c.store.List(ctx, user.ID)
	switch {
	case errors.Is(err, store.ErrNoSeries):
		return discord.NewResponse(input, fmt.Sprintf(msgNoSeries, displayName(user)))

	case err != nil:
		logger.Errorf("Failed to list series of %s: %+v", user.ID, err)
		return discord.NewResponse(input, msgGetFailed)
	}

	return discord.NewResponse(input, fmt.Sprintf(msgSeriesList, displayName(user), strings.Join(series, ", ")))
}

func displayName(user *discordgo.User) string {
	if name := user.DisplayName(); name != "" {
		return name
	}
	return "<@" + user.ID + ">"
}
