package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"deskbridge/internal/bootstrap"
	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/errs"
	"deskbridge/internal/usecase/statusconsole"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the sync status console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		model := statusconsole.NewStatusModel(ctx, svc.Cycle, statusconsole.Options{
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run status console")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
}
