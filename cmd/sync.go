package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"deskbridge/internal/bootstrap"
	"deskbridge/internal/bootstrap/logging"
	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/usecase/synccycle"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run and inspect connector sync cycles",
}

var syncRunCmd = &cobra.Command{
	Use:   "run <connector>",
	Short: "Run one export cycle for a connector",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		fullSync, _ := cmd.Flags().GetBool("full")
		outDir, _ := cmd.Flags().GetString("out")

		stats, err := svc.Cycle.RunCycle(ctx, cmd.Flags().Arg(0), synccycle.RunOptions{
			FullSync: fullSync,
			OutDir:   outDir,
		})
		if err != nil {
			logging.Error(ctx, "run sync cycle failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "run sync cycle")
		}

		if stats.Error != "" {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "cycle failed connector=%s error=%s\n", stats.Connector, stats.Error); err != nil {
				return errs.Wrap(err, "write cycle output")
			}
			return nil
		}

		if _, err := fmt.Fprintf(
			cmd.OutOrStdout(),
			"cycle completed connector=%s records=%d duration=%s\n",
			stats.Connector, stats.Counts.Total(), stats.Duration,
		); err != nil {
			return errs.Wrap(err, "write cycle output")
		}
		for _, entity := range stats.Counts.SortedKeys() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d\n", entity, stats.Counts[entity]); err != nil {
				return errs.Wrap(err, "write cycle counts")
			}
		}
		return nil
	}),
}

var syncStatusCmd = &cobra.Command{
	Use:   "status [connector]",
	Short: "Show last known sync state per connector",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		statuses, err := svc.Cycle.Status(ctx, cmd.Flags().Arg(0))
		if err != nil {
			logging.Error(ctx, "read sync status failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "read sync status")
		}

		for _, entry := range statuses {
			if _, err := fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s last-synced=%s cursor=%s tickets=%d\n",
				entry.Connector,
				formatLastSynced(entry),
				formatCursorState(entry.CursorState),
				entry.TicketCount,
			); err != nil {
				return errs.Wrap(err, "write status output")
			}
		}
		return nil
	}),
}

var syncListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported connectors",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc services) error {
		for _, name := range svc.Cycle.List() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return errs.Wrap(err, "write list output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.AddCommand(syncRunCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncListCmd)

	syncRunCmd.Flags().Bool("full", false, "Ignore the prior cursor and re-export everything")
	syncRunCmd.Flags().String("out", "", "Staging directory override")
}

func formatLastSynced(entry domainsync.ConnectorStatus) string {
	if entry.LastSyncedAt.IsZero() {
		return "never"
	}
	return entry.LastSyncedAt.UTC().Format(domainsync.TimeLayout)
}

func formatCursorState(state domainsync.CursorState) string {
	if len(state) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(state))
	for key, value := range state {
		parts = append(parts, key+"="+value)
	}
	return strings.Join(parts, ",")
}
