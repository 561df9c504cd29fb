// Package config assembles the configuration of every package from an optional YAML file,
// an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sofiwisher/sofiwisher/internal/bot"
	"github.com/sofiwisher/sofiwisher/internal/discord"
	"github.com/sofiwisher/sofiwisher/internal/httpapi"
	"github.com/sofiwisher/sofiwisher/internal/match"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
	"github.com/sofiwisher/sofiwisher/internal/pipeline"
	"github.com/sofiwisher/sofiwisher/internal/store"
	mongostore "github.com/sofiwisher/sofiwisher/internal/store/mongo"
	redisstore "github.com/sofiwisher/sofiwisher/internal/store/redis"
)

// Config holds the configuration of the whole bot.
type Config struct {
	Discord  discord.Config    `json:"discord" yaml:"discord"`
	Bot      bot.Config        `json:"bot" yaml:"bot"`
	Pipeline pipeline.Config   `json:"pipeline" yaml:"pipeline"`
	OCR      ocr.Config        `json:"ocr" yaml:"ocr"`
	Match    match.Config      `json:"match" yaml:"match"`
	Store    store.Config      `json:"store" yaml:"store"`
	Mongo    mongostore.Config `json:"mongo" yaml:"mongo"`
	Redis    redisstore.Config `json:"redis" yaml:"redis"`
	HTTP     httpapi.Config    `json:"http" yaml:"http"`
}

// New returns a Config holding every package's defaults.
func New() *Config {
	return &Config{
		Discord:  *discord.NewConfig(),
		Bot:      *bot.NewConfig(),
		Pipeline: *pipeline.NewConfig(),
		OCR:      *ocr.NewConfig(),
		Match:    *match.NewConfig(),
		Store:    *store.NewConfig(),
		Mongo:    *mongostore.NewConfig(),
		Redis:    *redisstore.NewConfig(),
		HTTP:     *httpapi.NewConfig(),
	}
}

// Path returns the configuration file to read: the given flag value, or CONFIG_PATH when it is empty.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}

// Load builds the Config.
//
// Variables in the env files are added to the environment without overriding what is already set;
// a missing env file is skipped. ".env" is used when no env file is given.
// Defaults are then overridden by the YAML file at path, if any, and finally by the environment.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	config := New()
	if path != "" {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Discord.Token == "" {
		errs = append(errs, errors.New("discord token must be set"))
	}

	if c.Pipeline.SegmentCount < 1 {
		errs = append(errs, fmt.Errorf("segment count must be positive, got %d", c.Pipeline.SegmentCount))
	}

	switch c.Pipeline.Converter {
	case pipeline.ConverterDwebp, pipeline.ConverterNative:
	default:
		errs = append(errs, fmt.Errorf("unknown converter %q", c.Pipeline.Converter))
	}

	if c.OCR.ROIFraction <= 0 || c.OCR.ROIFraction > 1 {
		errs = append(errs, fmt.Errorf("ROI fraction must be in (0, 1], got %g", c.OCR.ROIFraction))
	}

	switch c.Match.NotifyMode {
	case match.PerSegment, match.PerDrop:
	default:
		errs = append(errs, fmt.Errorf("unknown notify mode %q", c.Match.NotifyMode))
	}

	switch c.Store.Driver {
	case store.DriverMongo, store.DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	return errors.Join(errs...)
}
