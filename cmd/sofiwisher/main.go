// Command sofiwisher runs the Discord bot that reads SOFI drops and mentions the users
// who registered one of the series found on the dropped cards.
//
// Usage:
//
//	export DISCORD_TOKEN="your-bot-token"
//	export DROP_BOT_ID="id-of-the-drop-bot"
//	go run ./cmd/sofiwisher -config ./config.yaml
//
// Every setting can also be given through the environment or a .env file.
// Slash commands are registered separately with cmd/register-commands.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	"github.com/sofiwisher/sofiwisher/internal/bot"
	"github.com/sofiwisher/sofiwisher/internal/config"
	"github.com/sofiwisher/sofiwisher/internal/discord"
	"github.com/sofiwisher/sofiwisher/internal/httpapi"
	"github.com/sofiwisher/sofiwisher/internal/match"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
	"github.com/sofiwisher/sofiwisher/internal/ocr/tesseract"
	"github.com/sofiwisher/sofiwisher/internal/pipeline"
	"github.com/sofiwisher/sofiwisher/internal/store"
	mongostore "github.com/sofiwisher/sofiwisher/internal/store/mongo"
	redisstore "github.com/sofiwisher/sofiwisher/internal/store/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %s\n", err)
		os.Exit(1)
	}

	// Set up a context that cancels on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Close(closeCtx); err != nil {
			logger.Errorf("Failed to close store: %+v", err)
		}
	}()

	converter, err := pipeline.NewConverter(&cfg.Pipeline)
	if err != nil {
		return err
	}
	extractor := ocr.NewExtractor(tesseract.NewEngine(cfg.OCR.Languages...), &cfg.OCR)
	reader := pipeline.New(&cfg.Pipeline, converter, extractor)

	matcher, err := match.New(cfg.Match.NotifyMode)
	if err != nil {
		return err
	}

	if cfg.Bot.DropBotID == "" {
		logger.Warnf("DROP_BOT_ID is not set. Drops will not be detected.")
	}
	commands := bot.New(&cfg.Bot, s, reader, matcher)

	adapter, err := discord.NewAdapter(&cfg.Discord)
	if err != nil {
		return fmt.Errorf("failed to create adapter: %w", err)
	}

	// Series are persisted by the store; the user context storage only backs sarah's bookkeeping.
	storage := sarah.NewUserContextStorage(sarah.NewCacheConfig())
	sarah.RegisterBot(sarah.NewBot(adapter, sarah.BotWithStorage(storage)))
	for _, props := range commands.Props() {
		sarah.RegisterCommandProps(props)
	}

	// Start go-sarah's lifecycle management.
	if err := sarah.Run(ctx, sarah.NewConfig()); err != nil {
		return err
	}

	var httpErr chan error
	if cfg.HTTP.Addr != "" {
		httpErr = make(chan error, 1)
		go func() {
			httpErr <- httpapi.Serve(ctx, &cfg.HTTP, httpapi.NewRouter(s))
		}()
	}

	logger.Infof("Bot is running. Press Ctrl+C to stop.")

	// Block until shutdown signal or a failing HTTP API.
	select {
	case <-ctx.Done():
		logger.Infof("Shutting down...")
		if httpErr != nil {
			// The store is closed on return, so wait for in-flight API requests first.
			if err := <-httpErr; err != nil {
				logger.Errorf("Failed to stop HTTP API: %+v", err)
			}
		}
		return nil

	case err := <-httpErr:
		return fmt.Errorf("HTTP API stopped: %w", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case store.DriverMongo:
		return mongostore.Connect(ctx, &cfg.Mongo)

	case store.DriverRedis:
		return redisstore.Connect(ctx, &cfg.Redis)

	default:
		return nil, errors.New("unknown store driver " + cfg.Store.Driver)
	}
}
