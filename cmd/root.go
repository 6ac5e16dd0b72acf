package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shopbot",
	Short: "Conversational shopping assistant for Slack and the console",
	Long: `Shopbot pairs a chat channel with a conversational dialogue service
and a product search backend. The dialogue service recognizes what the
customer wants; shopbot runs the product searches and keeps a
per-customer shopping cart in a local database.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".shopbot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
