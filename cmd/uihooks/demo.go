package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uihooks/internal/demo"
)

func demoCmd() *cobra.Command {
	var (
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play the scripted hook scenarios",
		Long: `Play scripted scenarios against the in-memory DOM and print each
state transition:

  • async success      an operation resolving to 42
  • async failure      an operation failing with "x"
  • click outside      clicks inside, on and outside a watched element
  • dropdown page      the page served by "uihooks serve", driven by hand

Examples:
  uihooks demo
  uihooks demo --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := demo.Run(ctx, cmd.OutOrStdout(), logger, demo.Scenarios()); err != nil {
				return err
			}
			success("All scenarios passed")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Give up after this long")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log hook activity to stderr")

	return cmd
}
