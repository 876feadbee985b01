// Package cli wires configuration, storage and the HTTP server into the
// retroboard command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"retroboard/internal/config"
	"retroboard/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the retroboard CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "retroboard",
		Short: "Retroboard - collaborative retrospective boards",
		Long: `Retroboard serves shared boards with columns of short text records,
board membership and invites, and an activity feed of board events.

Settings are read from the environment and an optional .env file.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))

	return cmd
}

// load reads the configuration and builds the process logger from it.
func (o *RootOptions) load() (config.App, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.App{}, nil, err
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Logger(), nil
}

func openStore(ctx context.Context, cfg config.App, log *slog.Logger) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Debug("database ready", "driver", cfg.DBDriver)
	return st, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
