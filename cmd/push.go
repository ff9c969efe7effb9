package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"deskbridge/internal/bootstrap"
	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/errs"
	"deskbridge/internal/usecase/push"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push canonical ticket updates back to the origin system",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		workspace, _ := cmd.Flags().GetString("workspace")
		connector, _ := cmd.Flags().GetString("connector")

		result, err := svc.Push.Push(ctx, push.Input{
			Workspace: workspace,
			Connector: connector,
		})
		if err != nil {
			logging.Error(ctx, "outbound push failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "outbound push")
		}

		if _, err := fmt.Fprintf(
			cmd.OutOrStdout(),
			"push completed workspace=%s updated=%d skipped=%d cursor=%s\n",
			workspace, result.Updated, result.Skipped, orDash(result.NewCursor),
		); err != nil {
			return errs.Wrap(err, "write push output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().String("workspace", "", "Tenant workspace name")
	pushCmd.Flags().String("connector", "", "Origin connector receiving the updates")
	_ = pushCmd.MarkFlagRequired("workspace")
	_ = pushCmd.MarkFlagRequired("connector")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
