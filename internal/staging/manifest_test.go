package staging

import (
	"os"
	"strings"
	"testing"
	"time"

	domainsync "deskbridge/internal/domain/sync"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	exported := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	want := domainsync.Manifest{
		ExportedAt: exported,
		Counts: domainsync.Counts{
			domainsync.EntityTickets:   12,
			domainsync.EntityCustomers: 4,
		},
		CursorState: domainsync.CursorState{"tickets": "1700000000"},
	}
	if err := WriteManifest(dir, want); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	got, ok, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if !ok {
		t.Fatalf("ReadManifest() ok = false, want true")
	}
	if !got.ExportedAt.Equal(exported) {
		t.Fatalf("exportedAt = %v, want %v", got.ExportedAt, exported)
	}
	if got.Counts[domainsync.EntityTickets] != 12 {
		t.Fatalf("ticket count = %d, want 12", got.Counts[domainsync.EntityTickets])
	}
	if got.CursorState["tickets"] != "1700000000" {
		t.Fatalf("cursor = %q", got.CursorState["tickets"])
	}
}

func TestReadManifestAbsentMeansNoPriorRun(t *testing.T) {
	manifest, ok, err := ReadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if ok {
		t.Fatalf("ReadManifest() ok = true, want false")
	}
	if len(manifest.CursorState) != 0 {
		t.Fatalf("cursor state should be empty, got %v", manifest.CursorState)
	}
}

func TestReadManifestUnparsableMeansNoPriorRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(ManifestPath(dir), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	_, ok, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if ok {
		t.Fatalf("corrupt manifest should read as absent")
	}
}

func TestWriteManifestOmitsEmptyCursorState(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir, domainsync.Manifest{
		ExportedAt: time.Now().UTC(),
		Counts:     domainsync.Counts{domainsync.EntityTickets: 1},
	}); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	raw, err := os.ReadFile(ManifestPath(dir))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if strings.Contains(string(raw), "cursorState") {
		t.Fatalf("full-export manifest must not carry a cursorState key: %s", raw)
	}
}
