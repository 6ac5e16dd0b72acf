package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxshop/shopbot/internal/assistant"
	"github.com/voxshop/shopbot/internal/bot"
	"github.com/voxshop/shopbot/internal/channel"
	"github.com/voxshop/shopbot/internal/config"
	"github.com/voxshop/shopbot/internal/db"
	"github.com/voxshop/shopbot/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the chat channel and serve customers",
	Long: `Connects to the configured chat channel, resolves the dialogue
workspace, and answers customer messages until interrupted. Product
searches and cart changes happen as the dialogue service requests them.`,
	RunE: runRun,
}

var runConsole bool

func init() {
	runCmd.Flags().BoolVar(&runConsole, "console", false, "talk on stdin/stdout instead of the configured channel")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runConsole {
		cfg.Channel = config.ChannelConsole
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Customer store.
	database, err := db.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening customer store: %w", err)
	}
	defer database.Close()
	customers := store.NewStore(database)

	// Dialogue service. A misconfigured workspace fails here, before
	// any channel connection is made.
	dialogue, err := assistant.New(ctx, assistant.Options{
		Backend:       string(cfg.Assistant.Backend),
		URL:           cfg.Assistant.URL,
		Username:      cfg.Assistant.Username,
		Password:      cfg.Assistant.Password,
		WorkspaceID:   cfg.Assistant.WorkspaceID,
		WorkspaceName: cfg.Assistant.WorkspaceName,
		Model:         cfg.Assistant.Model,
		APIKey:        cfg.Assistant.APIKey,
	})
	if err != nil {
		return fmt.Errorf("creating dialogue service: %w", err)
	}

	// Product search.
	searcher, err := createSearcherFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating search backend: %w", err)
	}

	// Chat channel. The slack connection is the unrecoverable startup
	// step; the bot loop never starts without it.
	var ch channel.Channel
	switch cfg.Channel {
	case config.ChannelSlack:
		slack := channel.NewSlackChannel(channel.SlackOptions{
			BotToken:      cfg.Slack.BotToken,
			APIURL:        cfg.Slack.APIURL,
			AllowChannels: cfg.Slack.AllowChannels,
		})
		if err := slack.Connect(ctx); err != nil {
			return fmt.Errorf("connecting to slack: %w", err)
		}
		ch = slack
	case config.ChannelConsole:
		fmt.Fprintln(os.Stderr, "shopbot console session; type your messages below")
		ch = channel.NewConsoleChannel(os.Stdin, os.Stdout, channel.UserProfile{
			Email:     "console@localhost",
			FirstName: "Console",
			LastName:  "Shopper",
		})
	default:
		return fmt.Errorf("unknown channel %q", cfg.Channel)
	}

	b := bot.New(ch, dialogue, customers, searcher, bot.Options{
		PollInterval: time.Duration(cfg.PollIntervalMS) * time.Millisecond,
		Verbose:      verbose,
	})

	return b.Run(ctx)
}
