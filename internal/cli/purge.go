package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"retroboard/internal/collab"
)

// PurgeOptions holds flags for the purge-posts command.
type PurgeOptions struct {
	*RootOptions
	Days int
}

// NewPurgeCommand creates the purge-posts command.
func NewPurgeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PurgeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "purge-posts",
		Short: "Delete feed posts older than a number of days",
		Long: `Delete feed posts dated more than --days days ago.

Without --days the RETENTION_DAYS setting is used.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			days := cfg.RetentionDays
			if cmd.Flags().Changed("days") {
				days = opts.Days
			}
			ctx := commandContext(cmd)
			st, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := collab.New(st, collab.WithLogger(log)).PurgeFeed(ctx, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d posts\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 0, "age in days (default RETENTION_DAYS)")

	return cmd
}
