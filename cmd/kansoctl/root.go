package main

import (
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/config"
)

var flagConfig string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kansoctl",
		Short:         "Kanso habits maintenance tool",
		Long:          "Apply the database schema and run the streak engine offline against exported habits.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: $KANSO_CONFIG or config.yaml)")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newCalendarCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	return config.Load()
}
