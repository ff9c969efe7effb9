package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"deskbridge/internal/bootstrap"
	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/errs"
	"deskbridge/internal/staging"
	"deskbridge/internal/usecase/ingest"
)

const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the staging root and ingest fresh exports automatically",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		workspace, _ := cmd.Flags().GetString("workspace")
		root, _ := cmd.Flags().GetString("root")
		if root == "" {
			root = app.Config.Staging.Root
		}
		if err := os.MkdirAll(root, 0o755); err != nil {
			return errs.Wrapf(err, "create staging root %q", root)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errs.Wrap(err, "create watcher")
		}
		defer watcher.Close()

		if err := watcher.Add(root); err != nil {
			return errs.Wrapf(err, "watch staging root %q", root)
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			return errs.Wrapf(err, "read staging root %q", root)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				if err := watcher.Add(filepath.Join(root, entry.Name())); err != nil {
					return errs.Wrapf(err, "watch staging dir %q", entry.Name())
				}
			}
		}

		logging.Info(ctx, "watching staging root", slog.String("root", root))

		// A manifest write marks a complete export. Writes are debounced
		// per directory so partial flushes trigger one ingest, not many.
		pending := make(map[string]*time.Timer)
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&fsnotify.Create != 0 {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logging.Warn(ctx, "watch new staging dir failed", slog.Any("err", errs.Loggable(err)))
						}
						continue
					}
				}
				if filepath.Base(event.Name) != staging.ManifestFileName {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}

				dir := filepath.Dir(event.Name)
				if timer, exists := pending[dir]; exists {
					timer.Stop()
				}
				pending[dir] = time.AfterFunc(watchDebounce, func() {
					connector := filepath.Base(dir)
					result, err := svc.Ingest.Ingest(ctx, ingest.Input{
						Connector: connector,
						Workspace: workspace,
						Dir:       dir,
					})
					if err != nil {
						logging.Error(ctx, "auto ingest failed",
							slog.String("connector", connector),
							slog.Any("err", errs.Loggable(err)),
						)
						return
					}
					logging.Info(ctx, "auto ingest completed",
						slog.String("connector", connector),
						slog.Int("records", result.Counts.Total()),
						slog.Int("skipped", result.Skipped),
						slog.Int("orphaned", result.Orphaned),
					)
				})
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logging.Warn(ctx, "watcher error", slog.Any("err", errs.Loggable(watchErr)))
			}
		}
	}),
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("workspace", "", "Tenant workspace name")
	watchCmd.Flags().String("root", "", "Staging root override")
	_ = watchCmd.MarkFlagRequired("workspace")
}
