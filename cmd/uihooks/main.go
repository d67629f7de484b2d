package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hookerrors "github.com/vango-dev/uihooks/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		hookerrors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uihooks",
		Short: "UI event and async hooks for Go component trees",
		Long: `uihooks ships three hooks for components on the reactive runtime:

  • UseEventListener   attach a callback to an event target
  • UseClickOutside    react to clicks outside an element
  • UseAsync           track an async operation's loading, error and value

The CLI serves a demo page wired to the hooks over a WebSocket bridge
and plays scripted scenarios against the in-memory DOM.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		demoCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
