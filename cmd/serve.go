package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxshop/shopbot/internal/db"
	mcpserver "github.com/voxshop/shopbot/internal/mcp"
	"github.com/voxshop/shopbot/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing product search and shopping cart tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening customer store: %w", err)
		}
		defer database.Close()
		customers := store.NewStore(database)

		searcher, err := createSearcherFromConfig(context.Background(), cfg)
		if err != nil {
			// The cart tools still work without a search backend.
			fmt.Fprintf(os.Stderr, "Warning: search backend unavailable: %v\n", err)
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "shopbot MCP server started on stdio (store=%s)\n", cfg.Store.Path)

		srv := mcpserver.NewServer(customers, searcher)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
