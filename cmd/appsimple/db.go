package main

import (
	"bufio"
	"context"
	"strings"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/app"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store/drivers/sqlite"
	"github.com/MrFrey75/AppSimple-sub001/pkg/cryptox"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewDBCmd creates the db subcommand group. These commands open the database
// file directly and do not need the API server.
func NewDBCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the local database",
	}

	cmd.AddCommand(newDBInitCmd(opts))
	cmd.AddCommand(newDBResetCmd(opts))
	return cmd
}

func newDBInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the schema and the administrator account",
		Long: `Apply pending migrations and, on an empty database, create the protected
administrator with APPSIMPLE_ADMIN_PASSWORD. Running it again changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBootstrap(cmd, opts, func(ctx context.Context, svc *service.BootstrapService) error {
				if err := svc.Bootstrap(ctx); err != nil {
					return err
				}
				cmd.Println("Database initialized:", opts.database)
				return nil
			})
		},
	}
}

func newDBResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every account and reseed the defaults",
		Long: `Delete every user account, then recreate the protected administrator and
the sample users. Tokens issued before the reset stay valid until they expire.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				cmd.Printf("This deletes every account in %s.\n", opts.database)
				cmd.Print("Proceed? (type 'yes'): ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(line), "yes") {
					cmd.Println("Aborted.")
					return nil
				}
			}

			return withBootstrap(cmd, opts, func(ctx context.Context, svc *service.BootstrapService) error {
				n, err := svc.ResetAndReseed(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("Database reset: %d users.\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation prompt")
	return cmd
}

// withBootstrap opens the database named by --database and runs fn with a
// BootstrapService over it.
func withBootstrap(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *service.BootstrapService) error) error {
	cfg, err := app.LoadConfig(cmd.Context())
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "load configuration").Wrap(err)
	}

	logger := slogx.New(slogx.Config{
		Service: "appsimple-cli",
		Version: version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})
	ctx := slogx.WithContext(cmd.Context(), logger)

	st, err := sqlite.NewStore(sqlite.FileDSN(opts.database))
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("file", opts.database).Wrap(err)
	}
	defer func() { _ = st.Close() }()

	svc := &service.BootstrapService{
		Store:         st,
		Hasher:        cryptox.NewHasher(cryptox.DefaultParams),
		AdminPassword: cfg.AdminPassword,
	}

	if err := fn(ctx, svc); err != nil {
		slogx.LogError(logger, "database command failed", err)
		return err
	}
	return nil
}
