package repository

import (
	"context"
	"testing"

	"deskbridge/internal/ports"
)

func TestMappingLookupMissReturnsNotFound(t *testing.T) {
	repo := NewMappingRepository(setupDB(t))

	_, found, err := repo.Lookup(context.Background(), "int-1", "tickets", "tk-1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if found {
		t.Fatalf("Lookup() found = true, want false")
	}
}

func TestMappingUpsertNeverRepointsInternalID(t *testing.T) {
	repo := NewMappingRepository(setupDB(t))
	ctx := context.Background()

	first := ports.ExternalMapping{
		IntegrationID: "int-1",
		ObjectType:    "tickets",
		ExternalID:    "tk-1",
		InternalID:    "internal-a",
		LastSeenAt:    "2026-03-14T09:00:00Z",
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert(first) error = %v", err)
	}

	second := first
	second.InternalID = "internal-b"
	second.LastSeenAt = "2026-03-15T09:00:00Z"
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert(second) error = %v", err)
	}

	id, found, err := repo.Lookup(ctx, "int-1", "tickets", "tk-1")
	if err != nil || !found {
		t.Fatalf("Lookup() = %v %v", found, err)
	}
	if id != "internal-a" {
		t.Fatalf("internal id = %q, want internal-a (bound triples never re-point)", id)
	}
}

func TestMappingTripleIsScopedPerIntegrationAndType(t *testing.T) {
	repo := NewMappingRepository(setupDB(t))
	ctx := context.Background()

	seed := []ports.ExternalMapping{
		{IntegrationID: "int-1", ObjectType: "tickets", ExternalID: "1", InternalID: "t-a", LastSeenAt: "x"},
		{IntegrationID: "int-1", ObjectType: "customers", ExternalID: "1", InternalID: "c-a", LastSeenAt: "x"},
		{IntegrationID: "int-2", ObjectType: "tickets", ExternalID: "1", InternalID: "t-b", LastSeenAt: "x"},
	}
	for _, m := range seed {
		if err := repo.Upsert(ctx, m); err != nil {
			t.Fatalf("Upsert(%v) error = %v", m, err)
		}
	}

	id, _, _ := repo.Lookup(ctx, "int-1", "tickets", "1")
	if id != "t-a" {
		t.Fatalf("int-1 tickets = %q, want t-a", id)
	}
	id, _, _ = repo.Lookup(ctx, "int-1", "customers", "1")
	if id != "c-a" {
		t.Fatalf("int-1 customers = %q, want c-a", id)
	}
	id, _, _ = repo.Lookup(ctx, "int-2", "tickets", "1")
	if id != "t-b" {
		t.Fatalf("int-2 tickets = %q, want t-b", id)
	}

	count, err := repo.CountByType(ctx, "int-1", "tickets")
	if err != nil {
		t.Fatalf("CountByType() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestMappingReverseLookup(t *testing.T) {
	repo := NewMappingRepository(setupDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, ports.ExternalMapping{
		IntegrationID: "int-1",
		ObjectType:    "tickets",
		ExternalID:    "tk-9",
		InternalID:    "internal-9",
		LastSeenAt:    "x",
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	externalID, found, err := repo.ReverseLookup(ctx, "int-1", "tickets", "internal-9")
	if err != nil {
		t.Fatalf("ReverseLookup() error = %v", err)
	}
	if !found || externalID != "tk-9" {
		t.Fatalf("ReverseLookup() = %q %v, want tk-9 true", externalID, found)
	}

	_, found, err = repo.ReverseLookup(ctx, "int-1", "tickets", "no-such-id")
	if err != nil {
		t.Fatalf("ReverseLookup(miss) error = %v", err)
	}
	if found {
		t.Fatalf("ReverseLookup(miss) found = true, want false")
	}
}
