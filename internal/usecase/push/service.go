package push

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"deskbridge/internal/bootstrap/logging"
	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/errs"
	"deskbridge/internal/ports"
)

const assigneeFallback = "unassigned"

// Service computes the watermark-bounded outbound diff and writes it back
// to the origin system.
type Service struct {
	state    ports.SyncStateRepository
	mappings ports.MappingRepository
	canon    ports.CanonicalRepository
	updater  ports.OriginUpdater

	profilePath string
	maxAttempts uint64
}

func NewService(
	state ports.SyncStateRepository,
	mappings ports.MappingRepository,
	canon ports.CanonicalRepository,
	updater ports.OriginUpdater,
	profilePath string,
	maxAttempts int,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = 4
	}
	return &Service{
		state:       state,
		mappings:    mappings,
		canon:       canon,
		updater:     updater,
		profilePath: profilePath,
		maxAttempts: uint64(maxAttempts),
	}
}

type Input struct {
	// Workspace is the tenant workspace name.
	Workspace string
	// Connector names the origin provider receiving the updates.
	Connector string
}

type Result struct {
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
	NewCursor string `json:"newCursor,omitempty"`
}

// Push selects tickets updated since the outbound watermark and pushes
// them, oldest first. Tickets without a known external counterpart are
// skipped, never errors. The persisted cursor is the maximum updatedAt
// actually processed - not "now" - so a mid-batch failure bounds retry
// re-processing to the failed batch.
func (s *Service) Push(ctx context.Context, input Input) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, errs.Wrap(err, "check context")
	}
	if strings.TrimSpace(input.Workspace) == "" {
		return Result{}, errors.New("workspace is required")
	}
	if strings.TrimSpace(input.Connector) == "" {
		return Result{}, errors.New("connector is required")
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.push"),
		slog.String("workspace", input.Workspace),
		slog.String("connector", input.Connector),
	)

	profile, err := loadPushProfile(s.profilePath)
	if err != nil {
		return Result{}, errs.Wrap(err, "load push profile")
	}
	vocab := profile.vocabularyFor(input.Connector)

	workspace, err := s.state.GetOrCreateWorkspace(logCtx, input.Workspace)
	if err != nil {
		return Result{}, err
	}
	integration, err := s.state.GetOrCreateIntegration(logCtx, workspace.WorkspaceID, input.Connector)
	if err != nil {
		return Result{}, err
	}

	since := ""
	cursor, err := s.state.GetCursor(
		logCtx, integration.IntegrationID,
		string(domainsync.EntityTickets), "outbound",
	)
	if err == nil {
		since = cursor.Token
	} else if !errors.Is(err, ports.ErrCursorNotFound) {
		return Result{}, err
	}

	tickets, err := s.canon.TicketsUpdatedSince(logCtx, workspace.WorkspaceID, since)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var maxProcessed time.Time
	for _, ticket := range tickets {
		externalID, found, err := s.mappings.ReverseLookup(
			logCtx, integration.IntegrationID,
			string(domainsync.EntityTickets), ticket.TicketID,
		)
		if err != nil {
			return result, err
		}
		if !found {
			// Locally created ticket with no origin counterpart.
			result.Skipped++
			continue
		}

		update := ports.OriginTicketUpdate{
			Provider:   input.Connector,
			ExternalID: externalID,
			Status:     vocab.TranslateStatus(ticket.Status),
			Priority:   vocab.TranslatePriority(ticket.Priority),
			Assignee:   s.resolveAssignee(logCtx, integration.IntegrationID, ticket.AssigneeID),
		}
		if err := s.updateWithRetry(logCtx, update); err != nil {
			// Persist the watermark for the processed prefix before
			// surfacing the failure; retry resumes right here.
			s.advanceCursor(logCtx, integration.IntegrationID, maxProcessed)
			return result, errs.Wrapf(err, "push ticket %s", ticket.TicketID)
		}

		result.Updated++
		if updated, ok := domainsync.ParseTime(ticket.UpdatedAt); ok && updated.After(maxProcessed) {
			maxProcessed = updated
		}
	}

	if newCursor, ok := s.advanceCursor(logCtx, integration.IntegrationID, maxProcessed); ok {
		result.NewCursor = newCursor
	} else {
		result.NewCursor = since
	}

	logging.Info(logCtx, "outbound push completed",
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

// resolveAssignee translates the canonical assignee back to the origin's
// identifier, with an explicit fallback so the field is never blank.
func (s *Service) resolveAssignee(ctx context.Context, integrationID string, assigneeID *string) string {
	if assigneeID == nil {
		return assigneeFallback
	}
	externalID, found, err := s.mappings.ReverseLookup(
		ctx, integrationID, string(domainsync.EntityUsers), *assigneeID,
	)
	if err != nil || !found {
		return assigneeFallback
	}
	return externalID
}

func (s *Service) updateWithRetry(ctx context.Context, update ports.OriginTicketUpdate) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxAttempts-1),
		ctx,
	)
	return backoff.Retry(func() error {
		return s.updater.UpdateTicket(ctx, update)
	}, policy)
}

// advanceCursor persists the new watermark when anything was processed.
// The cursor only moves forward.
func (s *Service) advanceCursor(ctx context.Context, integrationID string, maxProcessed time.Time) (string, bool) {
	if maxProcessed.IsZero() {
		return "", false
	}
	token := domainsync.FormatTime(maxProcessed)
	err := s.state.PutCursor(ctx, ports.SyncCursor{
		IntegrationID: integrationID,
		ObjectType:    string(domainsync.EntityTickets),
		Direction:     "outbound",
		Token:         token,
		UpdatedAt:     domainsync.FormatTime(time.Now()),
	})
	if err != nil {
		logging.Warn(ctx, "persist outbound cursor failed", slog.Any("err", errs.Loggable(err)))
		return "", false
	}
	return token, true
}
