package synccycle

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"deskbridge/internal/bootstrap/logging"
	"deskbridge/internal/connectors"
	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/staging"
)

// Service drives per-connector sync cycles and answers manifest-backed
// status queries.
type Service struct {
	stagingRoot string
}

func NewService(stagingRoot string) *Service {
	return &Service{stagingRoot: stagingRoot}
}

type RunOptions struct {
	FullSync bool
	// OutDir overrides the connector's default staging directory.
	OutDir string
}

// RunCycle executes one export cycle for the named connector.
//
// Configuration errors (unknown connector, missing credentials) are
// returned as errors before any I/O happens. Execution-time failures are
// never returned: the error is absorbed into CycleStats.Error with zero
// counts and valid timestamps, so schedulers iterating many connectors
// treat every cycle uniformly and are never halted by one bad connector.
func (s *Service) RunCycle(ctx context.Context, name string, opts RunOptions) (domainsync.CycleStats, error) {
	if ctx == nil {
		return domainsync.CycleStats{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return domainsync.CycleStats{}, errs.Wrap(err, "check context")
	}

	connector, err := connectors.Lookup(strings.TrimSpace(name))
	if err != nil {
		return domainsync.CycleStats{}, err
	}
	creds, err := connectors.ResolveCredentials(connector)
	if err != nil {
		return domainsync.CycleStats{}, err
	}

	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Join(s.stagingRoot, connector.DefaultStagingDir())
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.synccycle"),
		slog.String("connector", connector.Name()),
		slog.Bool("full_sync", opts.FullSync),
	)

	stats := domainsync.CycleStats{
		Connector: connector.Name(),
		StartedAt: time.Now().UTC(),
		FullSync:  opts.FullSync,
		Counts:    domainsync.Counts{},
	}

	var prior domainsync.CursorState
	if !opts.FullSync && connector.Incremental() {
		if manifest, ok, readErr := staging.ReadManifest(dir); readErr == nil && ok {
			prior = manifest.CursorState
		}
	}

	result, err := connector.Export(logCtx, connectors.ExportRequest{
		Credentials: creds,
		StagingDir:  dir,
		PriorCursor: prior,
		FullSync:    opts.FullSync,
	})
	stats.FinishedAt = time.Now().UTC()
	stats.Duration = stats.FinishedAt.Sub(stats.StartedAt)

	if err != nil {
		// Execution failure: absorb, report inside the stats.
		stats.Error = err.Error()
		logging.Error(logCtx, "export step failed", slog.Any("err", errs.Loggable(err)))
		return stats, nil
	}

	stats.Counts = result.Counts
	stats.CursorState = result.CursorState

	manifest := domainsync.Manifest{
		ExportedAt:  stats.FinishedAt,
		Counts:      result.Counts,
		CursorState: result.CursorState,
	}
	if err := staging.WriteManifest(dir, manifest); err != nil {
		stats.Error = err.Error()
		logging.Error(logCtx, "write manifest failed", slog.Any("err", errs.Loggable(err)))
		return stats, nil
	}

	logging.Info(logCtx, "sync cycle completed",
		slog.Int("records", stats.Counts.Total()),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// Status reports the last known state for one connector, or for all
// registered connectors when name is empty. Pure manifest reads: no
// network, no database, and an absent manifest yields a zero entry rather
// than an error.
func (s *Service) Status(ctx context.Context, name string) ([]domainsync.ConnectorStatus, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	names := connectors.Names()
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		if _, err := connectors.Lookup(trimmed); err != nil {
			return nil, err
		}
		names = []string{trimmed}
	}

	statuses := make([]domainsync.ConnectorStatus, 0, len(names))
	for _, connectorName := range names {
		connector, err := connectors.Lookup(connectorName)
		if err != nil {
			return nil, err
		}

		status := domainsync.ConnectorStatus{Connector: connectorName}
		dir := filepath.Join(s.stagingRoot, connector.DefaultStagingDir())
		if manifest, ok, err := staging.ReadManifest(dir); err == nil && ok {
			status.LastSyncedAt = manifest.ExportedAt
			status.CursorState = manifest.CursorState
			status.TicketCount = manifest.Counts[domainsync.EntityTickets]
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// List enumerates supported connector names.
func (s *Service) List() []string {
	return connectors.Names()
}
