// Command fares is a standalone CLI for querying Ryanair fares from the
// terminal: airport lookups, route listings, and cheapest-per-day searches.
// It shares the API client with the bot but needs no bot token or database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &clientOptions{}

	root := &cobra.Command{
		Use:           "fares",
		Short:         "Query Ryanair fares from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Override the Ryanair API base URL")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newAirportsCmd(opts),
		newDestinationsCmd(opts),
		newCheapestCmd(opts),
		newMonthlyCmd(opts),
		newSearchCmd(opts),
	)
	return root
}
