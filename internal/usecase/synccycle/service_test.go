package synccycle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"deskbridge/internal/connectors"
	domainsync "deskbridge/internal/domain/sync"
)

func setupService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	return NewService(root), root
}

func setZendeskEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ZENDESK_SUBDOMAIN", "acme")
	t.Setenv("ZENDESK_EMAIL", "ops@acme.test")
	t.Setenv("ZENDESK_API_TOKEN", "secret")
}

// swapZendeskFetch replaces the registry connector's fetch function for the
// duration of one test.
func swapZendeskFetch(t *testing.T, fetch connectors.FetchFunc) {
	t.Helper()
	c, err := connectors.Lookup("zendesk")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	zd, ok := c.(*connectors.Zendesk)
	if !ok {
		t.Fatalf("zendesk connector has unexpected type %T", c)
	}
	previous := zd.Fetch
	zd.Fetch = fetch
	t.Cleanup(func() { zd.Fetch = previous })
}

func TestRunCycleRejectsUnknownConnector(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.RunCycle(context.Background(), "jira", RunOptions{})
	if !errors.Is(err, domainsync.ErrUnknownConnector) {
		t.Fatalf("expected ErrUnknownConnector, got %v", err)
	}
}

func TestRunCycleRejectsMissingCredentials(t *testing.T) {
	svc, _ := setupService(t)
	t.Setenv("ZENDESK_SUBDOMAIN", "acme")
	t.Setenv("ZENDESK_EMAIL", "ops@acme.test")
	t.Setenv("ZENDESK_API_TOKEN", "")

	_, err := svc.RunCycle(context.Background(), "zendesk", RunOptions{})
	if !errors.Is(err, domainsync.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestRunCycleAbsorbsExportFailure(t *testing.T) {
	svc, _ := setupService(t)
	setZendeskEnv(t)
	swapZendeskFetch(t, func(context.Context, connectors.Credentials, domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
		return nil, nil, errors.New("origin api returned 503")
	})

	stats, err := svc.RunCycle(context.Background(), "zendesk", RunOptions{})
	if err != nil {
		t.Fatalf("execution failure must not surface as an error, got %v", err)
	}
	if stats.Error == "" {
		t.Fatalf("expected stats.Error to carry the export failure")
	}
	if stats.Counts.Total() != 0 {
		t.Fatalf("failed cycle reported %d records", stats.Counts.Total())
	}
	if stats.StartedAt.IsZero() || stats.FinishedAt.IsZero() {
		t.Fatalf("failed cycle must still carry timestamps")
	}
	if stats.FinishedAt.Before(stats.StartedAt) {
		t.Fatalf("finished %v before started %v", stats.FinishedAt, stats.StartedAt)
	}
}

func TestRunCycleWritesManifestAndResumesCursor(t *testing.T) {
	svc, _ := setupService(t)
	setZendeskEnv(t)

	ticket := json.RawMessage(`{"external_id":"tk-1","subject":"printer on fire"}`)
	var seenPrior domainsync.CursorState
	swapZendeskFetch(t, func(_ context.Context, _ connectors.Credentials, prior domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
		seenPrior = prior
		return map[domainsync.EntityType][]json.RawMessage{
				domainsync.EntityTickets: {ticket},
			},
			domainsync.CursorState{"tickets": "1700000000"},
			nil
	})

	stats, err := svc.RunCycle(context.Background(), "zendesk", RunOptions{})
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if seenPrior != nil {
		t.Fatalf("first cycle must run without a prior cursor, got %v", seenPrior)
	}
	if got := stats.Counts[domainsync.EntityTickets]; got != 1 {
		t.Fatalf("ticket count = %d, want 1", got)
	}
	if stats.CursorState["tickets"] != "1700000000" {
		t.Fatalf("cursor state = %v", stats.CursorState)
	}

	// The second incremental cycle resumes from the manifest's cursor.
	if _, err := svc.RunCycle(context.Background(), "zendesk", RunOptions{}); err != nil {
		t.Fatalf("second RunCycle: %v", err)
	}
	if seenPrior["tickets"] != "1700000000" {
		t.Fatalf("second cycle prior cursor = %v, want resumed state", seenPrior)
	}

	statuses, err := svc.Status(context.Background(), "zendesk")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses, want 1", len(statuses))
	}
	if statuses[0].TicketCount != 1 {
		t.Fatalf("status ticket count = %d, want 1", statuses[0].TicketCount)
	}
	if statuses[0].LastSyncedAt.IsZero() {
		t.Fatalf("status must carry the manifest export time")
	}
}

func TestRunCycleFullSyncDropsPriorCursor(t *testing.T) {
	svc, _ := setupService(t)
	setZendeskEnv(t)

	seenPrior := domainsync.CursorState{"sentinel": "x"}
	swapZendeskFetch(t, func(_ context.Context, _ connectors.Credentials, prior domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
		seenPrior = prior
		return nil, domainsync.CursorState{"tickets": "42"}, nil
	})

	if _, err := svc.RunCycle(context.Background(), "zendesk", RunOptions{}); err != nil {
		t.Fatalf("seed cycle: %v", err)
	}
	if _, err := svc.RunCycle(context.Background(), "zendesk", RunOptions{FullSync: true}); err != nil {
		t.Fatalf("full sync cycle: %v", err)
	}
	if seenPrior != nil {
		t.Fatalf("full sync must not resume a cursor, got %v", seenPrior)
	}
}

func TestStatusNeverSyncedConnectorIsZero(t *testing.T) {
	svc, _ := setupService(t)

	statuses, err := svc.Status(context.Background(), "")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != len(connectors.Names()) {
		t.Fatalf("got %d statuses, want %d", len(statuses), len(connectors.Names()))
	}
	for _, status := range statuses {
		if !status.LastSyncedAt.IsZero() || status.TicketCount != 0 {
			t.Fatalf("never-synced connector %s has state %+v", status.Connector, status)
		}
	}
}

func TestStatusRejectsUnknownConnector(t *testing.T) {
	svc, _ := setupService(t)

	if _, err := svc.Status(context.Background(), "jira"); !errors.Is(err, domainsync.ErrUnknownConnector) {
		t.Fatalf("expected ErrUnknownConnector, got %v", err)
	}
}

func TestListEnumeratesConnectors(t *testing.T) {
	svc, _ := setupService(t)

	names := svc.List()
	if len(names) != 3 {
		t.Fatalf("got %d connectors: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("connector names not sorted: %v", names)
		}
	}
}
