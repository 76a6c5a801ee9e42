package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/micro/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "microtodo",
		Short: "A to-do list served from a reactive micro document",
		Long: `microtodo serves the micro to-do app.

Every browser tab gets its own server-side document. Events travel over a
WebSocket, handlers update signals, and the re-rendered markup is sent
back. The list is persisted per browser in memory, SQLite or S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)
	return cmd
}
