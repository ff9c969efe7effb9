package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"deskbridge/internal/bootstrap/logging"
	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/ports"
	"deskbridge/internal/staging"
)

// Service is the canonicalization engine: it consumes a staging directory
// of per-entity NDJSON batches and folds them into the canonical store,
// idempotently, in dependency order.
type Service struct {
	state     ports.SyncStateRepository
	mappings  ports.MappingRepository
	raws      ports.RawRecordRepository
	canon     ports.CanonicalRepository
	uow       ports.UnitOfWork
	publisher ports.CyclePublisher
}

func NewService(
	state ports.SyncStateRepository,
	mappings ports.MappingRepository,
	raws ports.RawRecordRepository,
	canon ports.CanonicalRepository,
	uow ports.UnitOfWork,
	publisher ports.CyclePublisher,
) *Service {
	return &Service{
		state:     state,
		mappings:  mappings,
		raws:      raws,
		canon:     canon,
		uow:       uow,
		publisher: publisher,
	}
}

type Input struct {
	// Connector doubles as the integration provider name.
	Connector string
	// Workspace is the tenant workspace name; created on first sight.
	Workspace string
	// Dir is the staging directory holding the batches to ingest.
	Dir string
}

type Result struct {
	Workspace   string             `json:"workspace"`
	Integration string             `json:"integration"`
	Counts      domainsync.Counts  `json:"counts"`
	// Skipped counts records discarded at the decode boundary.
	Skipped int `json:"skipped"`
	// Orphaned counts records whose parent reference never resolved.
	Orphaned int `json:"orphaned"`
}

// Ingest runs one full pass. The whole pass is a single transaction: a
// crash rolls everything back and the cursor is simply not advanced.
// Every write here is idempotent, so the next cycle replays safely.
func (s *Service) Ingest(ctx context.Context, input Input) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, errs.Wrap(err, "check context")
	}
	if strings.TrimSpace(input.Connector) == "" {
		return Result{}, errors.New("connector is required")
	}
	if strings.TrimSpace(input.Workspace) == "" {
		return Result{}, errors.New("workspace is required")
	}
	if strings.TrimSpace(input.Dir) == "" {
		return Result{}, errors.New("staging dir is required")
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.ingest"),
		slog.String("connector", input.Connector),
		slog.String("workspace", input.Workspace),
	)

	startedAt := time.Now().UTC()
	result := Result{Counts: domainsync.Counts{}}
	err := s.uow.WithTx(logCtx, func(txCtx context.Context) error {
		workspace, err := s.state.GetOrCreateWorkspace(txCtx, input.Workspace)
		if err != nil {
			return err
		}
		integration, err := s.state.GetOrCreateIntegration(txCtx, workspace.WorkspaceID, input.Connector)
		if err != nil {
			return err
		}
		result.Workspace = workspace.WorkspaceID
		result.Integration = integration.IntegrationID

		p := newPass(s, workspace, integration)

		for _, entity := range domainsync.DependencyOrder {
			records, skipped, err := staging.ReadBatch(input.Dir, entity)
			if err != nil {
				return err
			}
			result.Skipped += skipped
			if err := s.ingestEntity(txCtx, p, entity, records, &result); err != nil {
				return err
			}
		}

		return s.state.SetIntegrationStatus(
			txCtx, integration.IntegrationID,
			"active", domainsync.FormatTime(time.Now()),
		)
	})
	if err != nil {
		return Result{}, errs.Wrap(err, "ingest pass")
	}

	finishedAt := time.Now().UTC()
	s.publishCompleted(logCtx, domainsync.CycleStats{
		Connector:      input.Connector,
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
		Duration:       finishedAt.Sub(startedAt),
		Counts:         result.Counts,
		SkippedRecords: result.Skipped,
	})

	logging.Info(logCtx, "ingest pass completed",
		slog.Int("records", result.Counts.Total()),
		slog.Int("skipped", result.Skipped),
		slog.Int("orphaned", result.Orphaned),
	)
	return result, nil
}

// publishCompleted is best effort: the fan-out is an external collaborator
// and a publish failure never fails the pass.
func (s *Service) publishCompleted(ctx context.Context, stats domainsync.CycleStats) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.publisher.PublishCycleCompleted(ctx, payload); err != nil {
		logging.Warn(ctx, "cycle event publish failed", slog.Any("err", errs.Loggable(err)))
	}
}

// ingestEntity dispatches one batch to its handler. The order of cases
// mirrors domainsync.DependencyOrder; records within a batch are
// independent once that order holds.
func (s *Service) ingestEntity(ctx context.Context, p *pass, entity domainsync.EntityType, records []json.RawMessage, result *Result) error {
	switch entity {
	case domainsync.EntityGroups:
		return s.ingestGroups(ctx, p, records, result)
	case domainsync.EntityOrganizations:
		return s.ingestOrganizations(ctx, p, records, result)
	case domainsync.EntityCustomers:
		return s.ingestCustomers(ctx, p, records, result)
	case domainsync.EntityBrands:
		return s.ingestBrands(ctx, p, records, result)
	case domainsync.EntityTicketForms:
		return s.ingestTicketForms(ctx, p, records, result)
	case domainsync.EntityCustomFields:
		return s.ingestCustomFields(ctx, p, records, result)
	case domainsync.EntityViews:
		return s.ingestViews(ctx, p, records, result)
	case domainsync.EntitySLAPolicies:
		return s.ingestSLAPolicies(ctx, p, records, result)
	case domainsync.EntityTickets:
		return s.ingestTickets(ctx, p, records, result)
	case domainsync.EntityAuditEvents:
		return s.ingestAuditEvents(ctx, p, records, result)
	case domainsync.EntityCsatRatings:
		return s.ingestCsatRatings(ctx, p, records, result)
	case domainsync.EntityTimeEntries:
		return s.ingestTimeEntries(ctx, p, records, result)
	case domainsync.EntityMessages:
		return s.ingestMessages(ctx, p, records, result)
	case domainsync.EntityKBArticles:
		return s.ingestKBArticles(ctx, p, records, result)
	case domainsync.EntityRules:
		return s.ingestRules(ctx, p, records, result)
	default:
		return nil
	}
}
