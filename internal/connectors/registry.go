package connectors

import (
	"context"
	"fmt"
	"sort"

	domainsync "deskbridge/internal/domain/sync"
)

// ExportRequest carries everything a connector needs for one export step.
// PriorCursor is nil on full syncs and for connectors that never resume.
type ExportRequest struct {
	Credentials Credentials
	StagingDir  string
	PriorCursor domainsync.CursorState
	FullSync    bool
}

type ExportResult struct {
	Counts      domainsync.Counts
	CursorState domainsync.CursorState
}

// Connector is a provider-specific export adapter. The vendor HTTP
// specifics (auth, pagination) live behind the Export implementation;
// this core only sees staged NDJSON batches and cursor tokens.
type Connector interface {
	Name() string
	// Incremental reports whether the connector honors a prior cursor.
	// Non-incremental connectors re-export in full on every cycle.
	Incremental() bool
	DefaultStagingDir() string
	CredentialVars() []CredentialVar
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
}

// registry is the fixed set of supported connectors, keyed by name.
// Dispatch is static: no reflection, no dynamic loading.
var registry = map[string]Connector{}

func register(c Connector) {
	registry[c.Name()] = c
}

func init() {
	register(NewZendesk())
	register(NewFreshdesk())
	register(NewKayako())
}

// Lookup resolves a connector by name; unknown names are a configuration
// error raised before any I/O.
func Lookup(name string) (Connector, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", domainsync.ErrUnknownConnector, name, Names())
	}
	return c, nil
}

// Names lists supported connector names in stable order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
