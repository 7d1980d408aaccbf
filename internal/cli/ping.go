package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxviazov/reporting-dashboard/internal/repository/postgres"
)

func newPingCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the view store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			start := time.Now()
			if err := postgres.NewPinger(rt.db.Pool()).Ping(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "postgres %s:%d ok (%s)\n",
				rt.cfg.Postgres.Host, rt.cfg.Postgres.Port, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
