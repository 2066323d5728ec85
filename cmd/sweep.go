package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mockmate/mockmate/internal/config"
	"github.com/mockmate/mockmate/internal/quota"
	"github.com/mockmate/mockmate/internal/store"
)

// sweepCmd runs the daily batch pass: reset free-tier quota counters and
// downgrade lapsed cancelled subscriptions. Intended to be invoked from a
// midnight cron on the host.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the daily quota reset and subscription downgrade pass",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}

		return quota.NewSweep(st.Users()).Run(cmd.Context())
	},
}
