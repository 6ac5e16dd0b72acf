package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voxshop/shopbot/internal/db"
	"github.com/voxshop/shopbot/internal/server"
	"github.com/voxshop/shopbot/internal/store"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  `Starts the shopbot HTTP server exposing the customer store and product search as a REST API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverPort == 0 {
			serverPort = cfg.Server.Port
		}

		database, err := db.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening customer store: %w", err)
		}
		defer database.Close()
		customers := store.NewStore(database)

		searcher, err := createSearcherFromConfig(context.Background(), cfg)
		if err != nil {
			// The store routes still work without a search backend.
			fmt.Fprintf(os.Stderr, "Warning: search backend unavailable: %v\n", err)
		}

		srv := server.New(server.Config{
			Host:           cfg.Server.Host,
			Port:           serverPort,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			// Without configured origins, stay open for local development.
			AllowAll: len(cfg.Server.AllowedOrigins) == 0,
		}, customers, searcher)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "shopbot server v%s starting on port %d\n", Version, serverPort)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.Store.Path)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (defaults to server.port from config)")
	rootCmd.AddCommand(serverCmd)
}
