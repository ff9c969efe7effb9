package connectors

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/staging"
)

func TestZendeskExportStagesEveryEntityFile(t *testing.T) {
	dir := t.TempDir()
	z := NewZendesk()
	z.Fetch = func(_ context.Context, _ Credentials, _ domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
		return map[domainsync.EntityType][]json.RawMessage{
			domainsync.EntityTickets: {
				json.RawMessage(`{"external_id":"tk-1"}`),
				json.RawMessage(`{"external_id":"tk-2"}`),
			},
		}, domainsync.CursorState{"tickets": "1700000000"}, nil
	}

	result, err := z.Export(context.Background(), ExportRequest{StagingDir: dir})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if result.Counts[domainsync.EntityTickets] != 2 {
		t.Fatalf("ticket count = %d, want 2", result.Counts[domainsync.EntityTickets])
	}
	if result.CursorState["tickets"] != "1700000000" {
		t.Fatalf("cursor = %v", result.CursorState)
	}

	// Even unfetched entities get an empty batch file so an ingest pass
	// sees a complete directory.
	for _, entity := range domainsync.DependencyOrder {
		if _, err := os.Stat(staging.BatchPath(dir, entity)); err != nil {
			t.Fatalf("missing batch file for %s: %v", entity, err)
		}
	}
}

func TestZendeskExportDropsCursorOnFullSync(t *testing.T) {
	z := NewZendesk()
	var seenPrior domainsync.CursorState
	z.Fetch = func(_ context.Context, _ Credentials, prior domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
		seenPrior = prior
		return nil, nil, nil
	}

	_, err := z.Export(context.Background(), ExportRequest{
		StagingDir:  t.TempDir(),
		PriorCursor: domainsync.CursorState{"tickets": "123"},
		FullSync:    true,
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if seenPrior != nil {
		t.Fatalf("full sync must not pass a prior cursor, got %v", seenPrior)
	}
}

func TestFreshdeskExportCarriesNoCursor(t *testing.T) {
	f := NewFreshdesk()
	f.Fetch = func(_ context.Context, _ Credentials, _ domainsync.CursorState) (map[domainsync.EntityType][]json.RawMessage, domainsync.CursorState, error) {
		return map[domainsync.EntityType][]json.RawMessage{
			domainsync.EntityTickets: {json.RawMessage(`{"external_id":"1"}`)},
		}, nil, nil
	}

	result, err := f.Export(context.Background(), ExportRequest{StagingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if result.CursorState != nil {
		t.Fatalf("full-export connector must not return cursor state, got %v", result.CursorState)
	}
}

func TestExtractArray(t *testing.T) {
	records, err := extractArray([]byte(`{"tickets":[{"id":1},{"id":2}]}`), "tickets")
	if err != nil {
		t.Fatalf("extractArray(envelope) error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	records, err = extractArray([]byte(`[{"id":1}]`), "")
	if err != nil {
		t.Fatalf("extractArray(top-level) error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	if _, err := extractArray([]byte(`{"other":[]}`), "tickets"); err == nil {
		t.Fatalf("missing key should error")
	}
}
