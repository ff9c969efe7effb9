package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"deskbridge/internal/bootstrap"
	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/errs"
	"deskbridge/internal/usecase/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <connector>",
	Short: "Fold a staged export into the canonical store",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		connector := cmd.Flags().Arg(0)
		workspace, _ := cmd.Flags().GetString("workspace")
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = filepath.Join(app.Config.Staging.Root, connector)
		}

		result, err := svc.Ingest.Ingest(ctx, ingest.Input{
			Connector: connector,
			Workspace: workspace,
			Dir:       dir,
		})
		if err != nil {
			logging.Error(ctx, "ingest staged export failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "ingest staged export")
		}

		if _, err := fmt.Fprintf(
			cmd.OutOrStdout(),
			"ingest completed workspace=%s records=%d skipped=%d orphaned=%d\n",
			result.Workspace, result.Counts.Total(), result.Skipped, result.Orphaned,
		); err != nil {
			return errs.Wrap(err, "write ingest output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().String("workspace", "", "Tenant workspace name")
	ingestCmd.Flags().String("dir", "", "Staging directory (default: <staging.root>/<connector>)")
	_ = ingestCmd.MarkFlagRequired("workspace")
}
