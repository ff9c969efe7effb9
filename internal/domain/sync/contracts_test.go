package sync

import (
	"testing"
	"time"
)

func TestParseTimeAcceptsBothPrecisions(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"2026-03-14T09:30:00Z", true},
		{"2026-03-14T09:30:00.123456789Z", true},
		{"2026-03-14T09:30:00+02:00", true},
		{"", false},
		{"not-a-time", false},
	}
	for _, tc := range cases {
		if _, ok := ParseTime(tc.raw); ok != tc.want {
			t.Fatalf("ParseTime(%q) ok = %v, want %v", tc.raw, ok, tc.want)
		}
	}
}

func TestFormatTimeRoundTrips(t *testing.T) {
	original := time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC)
	parsed, ok := ParseTime(FormatTime(original))
	if !ok {
		t.Fatalf("ParseTime() failed on formatted value")
	}
	if !parsed.Equal(original) {
		t.Fatalf("round trip = %v, want %v", parsed, original)
	}
}

func TestCountsAddAndTotal(t *testing.T) {
	counts := Counts{}
	counts.Add(EntityTickets, 3)
	counts.Add(EntityTickets, 2)
	counts.Add(EntityGroups, 0)

	if counts.Total() != 5 {
		t.Fatalf("Total() = %d, want 5", counts.Total())
	}
	if _, ok := counts[EntityGroups]; ok {
		t.Fatalf("zero adds must not create keys")
	}

	keys := counts.SortedKeys()
	if len(keys) != 1 || keys[0] != EntityTickets {
		t.Fatalf("SortedKeys() = %v", keys)
	}
}

func TestDependencyOrderReferencesResolveBackwards(t *testing.T) {
	index := make(map[EntityType]int, len(DependencyOrder))
	for i, entity := range DependencyOrder {
		index[entity] = i
	}

	// Each pair is (referencing type, referenced type); the referenced
	// type must come first.
	deps := [][2]EntityType{
		{EntityCustomers, EntityOrganizations},
		{EntityTickets, EntityCustomers},
		{EntityTickets, EntityGroups},
		{EntityTickets, EntityBrands},
		{EntityTickets, EntityTicketForms},
		{EntityMessages, EntityTickets},
		{EntityAuditEvents, EntityTickets},
		{EntityCsatRatings, EntityTickets},
		{EntityTimeEntries, EntityTickets},
	}
	for _, pair := range deps {
		from, ok := index[pair[0]]
		if !ok {
			t.Fatalf("%s missing from order", pair[0])
		}
		to, ok := index[pair[1]]
		if !ok {
			t.Fatalf("%s missing from order", pair[1])
		}
		if to >= from {
			t.Fatalf("%s must come before %s", pair[1], pair[0])
		}
	}
}

func TestCycleStatsFailed(t *testing.T) {
	if (CycleStats{}).Failed() {
		t.Fatalf("empty stats should not be failed")
	}
	if !(CycleStats{Error: "export blew up"}).Failed() {
		t.Fatalf("stats with error should be failed")
	}
}
