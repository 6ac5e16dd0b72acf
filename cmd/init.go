package cmd

import (
	"github.com/spf13/cobra"
	"github.com/voxshop/shopbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize shopbot configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure shopbot and generates a .shopbot.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
