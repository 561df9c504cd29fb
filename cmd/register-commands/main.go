// Command register-commands registers the bot's slash commands with Discord.
// It needs DISCORD_TOKEN and DISCORD_APP_ID; commands go to DISCORD_GUILD_ID when it is set
// and are registered globally otherwise.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oklahomer/go-kasumi/logger"

	"github.com/sofiwisher/sofiwisher/internal/config"
	"github.com/sofiwisher/sofiwisher/internal/discord"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %s\n", err)
		os.Exit(1)
	}

	session, err := discord.NewSession(&cfg.Discord)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %s\n", err)
		os.Exit(1)
	}

	registered, err := discord.RegisterCommands(session, &cfg.Discord)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	for _, cmd := range registered {
		logger.Infof("Registered /%s (%s)", cmd.Name, cmd.ID)
	}
}
