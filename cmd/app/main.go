package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hostelhub",
		Short:         "HostelHub - featured placements and listing subscriptions",
		Long:          `HostelHub serves the hostel listing API and runs the operator jobs behind it: migrations, the featured-placement expiry sweep, subscription expiry and seeding.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSweepCommand(),
		newExpireSubscriptionsCommand(),
		newSeedCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
