package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/cli/migrate"
	"github.com/tigefa4u/Ghost-sub000/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ghostsub",
		Short: "Ghostsub - subscription discount sync service",
		Long:  `Ghostsub keeps member subscriptions, discount windows and offer redemptions in sync with the billing provider.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
