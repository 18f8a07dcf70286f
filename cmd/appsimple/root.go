package main

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	defaultServer   = "http://localhost:8080"
	defaultDatabase = "appsimple.db"
)

type rootOptions struct {
	server   string
	database string
}

// NewRootCmd creates the root command for the appsimple CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "appsimple",
		Short: "AppSimple console client and admin tool",
		Long: `appsimple talks to the AppSimple API as an interactive console, and
manages the local database directly for first-time setup and resets.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("APPSIMPLE_SERVER", defaultServer),
		"API base URL (env APPSIMPLE_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.database, "database", envOr("APPSIMPLE_DATABASE_FILE", defaultDatabase),
		"SQLite database file for db commands (env APPSIMPLE_DATABASE_FILE)")

	cmd.AddCommand(NewShellCmd(opts))
	cmd.AddCommand(NewDBCmd(opts))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
