package connectors

import (
	"errors"
	"sort"
	"strings"
	"testing"

	domainsync "deskbridge/internal/domain/sync"
)

func TestLookupKnownConnectors(t *testing.T) {
	for _, name := range []string{"zendesk", "freshdesk", "kayako"} {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if c.Name() != name {
			t.Fatalf("Name() = %q, want %q", c.Name(), name)
		}
	}
}

func TestLookupUnknownConnectorNamesSupported(t *testing.T) {
	_, err := Lookup("intercom")
	if !errors.Is(err, domainsync.ErrUnknownConnector) {
		t.Fatalf("error = %v, want ErrUnknownConnector", err)
	}
	if !strings.Contains(err.Error(), "zendesk") {
		t.Fatalf("error should list supported connectors, got: %v", err)
	}
}

func TestNamesStableOrder(t *testing.T) {
	names := Names()
	if len(names) != 3 {
		t.Fatalf("Names() = %v, want 3 entries", names)
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Names() = %v, want sorted", names)
	}
}

func TestOnlyZendeskIsIncremental(t *testing.T) {
	for _, tc := range []struct {
		name        string
		incremental bool
	}{
		{"zendesk", true},
		{"freshdesk", false},
		{"kayako", false},
	} {
		c, err := Lookup(tc.name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", tc.name, err)
		}
		if c.Incremental() != tc.incremental {
			t.Fatalf("%s Incremental() = %v, want %v", tc.name, c.Incremental(), tc.incremental)
		}
	}
}
