package main

import (
	"github.com/MrFrey75/AppSimple-sub001/internal/console"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/spf13/cobra"
)

// NewShellCmd creates the interactive console subcommand.
func NewShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console",
		Long: `Start an interactive console against the API. The console keeps one
login for the life of the process and only lists the actions your role
is allowed to perform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := console.New(authsdk.NewSDKClient(opts.server), cmd.InOrStdin(), cmd.OutOrStdout())
			return c.Run(cmd.Context())
		},
	}
}
