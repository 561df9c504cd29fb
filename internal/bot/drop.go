package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
	"github.com/sofiwisher/sofiwisher/internal/discord"
	"github.com/sofiwisher/sofiwisher/internal/match"
)

// Drop reads the drop image and replies to the drop once per match.
// Failures are returned for sarah to log; nothing is posted to the channel.
func (c *Commands) Drop(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
	in, ok := input.(*discord.Input)
	if !ok || in.Event == nil {
		return nil, fmt.Errorf("unexpected input %T", input)
	}

	url := dropImageURL(in.Event.Message)
	logger.Infof("Drop %s received in channel %s", in.Event.ID, in.Event.ChannelID)

	texts, err := c.reader.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to read drop %s: %w", in.Event.ID, err)
	}

	records, err := c.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch-lists for drop %s: %w", in.Event.ID, err)
	}

	results := c.matcher.Match(texts, records)
	if len(results) == 0 {
		logger.Debugf("Nothing came up for drop %s", in.Event.ID)
		return nil, nil
	}

	logger.Infof("Drop %s matched %d times", in.Event.ID, len(results))
	return discord.NewResponse(input, dropReplies(results))
}

func dropReplies(results []match.Result) []string {
	replies := make([]string, 0, len(results))
	for _, result := range results {
		replies = append(replies, fmt.Sprintf("<@%s> the series %s have been found !", result.UserID, strings.Join(result.Labels, ", ")))
	}
	return replies
}
