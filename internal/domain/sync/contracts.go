package sync

import (
	"sort"
	"strings"
	"time"
)

// EntityType names one staged batch / canonical entity class. Values double
// as staging file basenames and as the object-type key of the external-ID
// mapping store.
type EntityType string

const (
	EntityGroups        EntityType = "groups"
	EntityOrganizations EntityType = "organizations"
	EntityCustomers     EntityType = "customers"
	EntityBrands        EntityType = "brands"
	EntityTicketForms   EntityType = "ticket_forms"
	EntityCustomFields  EntityType = "custom_fields"
	EntityViews         EntityType = "views"
	EntitySLAPolicies   EntityType = "sla_policies"
	EntityTickets       EntityType = "tickets"
	EntityAuditEvents   EntityType = "audit_events"
	EntityCsatRatings   EntityType = "csat_ratings"
	EntityTimeEntries   EntityType = "time_entries"
	EntityMessages      EntityType = "messages"
	EntityKBArticles    EntityType = "kb_articles"
	EntityRules         EntityType = "rules"

	// Derived object types that never appear as staged batches but do get
	// external-ID mappings of their own.
	EntityUsers         EntityType = "users"
	EntityConversations EntityType = "conversations"
	EntityAttachments   EntityType = "attachments"
)

// DependencyOrder is the fixed ingestion order. A type may only reference
// types that appear before it; processing in this order guarantees every
// foreign reference is resolvable from the pass arena when needed.
var DependencyOrder = []EntityType{
	EntityGroups,
	EntityOrganizations,
	EntityCustomers,
	EntityBrands,
	EntityTicketForms,
	EntityCustomFields,
	EntityViews,
	EntitySLAPolicies,
	EntityTickets,
	EntityAuditEvents,
	EntityCsatRatings,
	EntityTimeEntries,
	EntityMessages,
	EntityKBArticles,
	EntityRules,
}

// Counts maps entity type to the number of records seen.
type Counts map[EntityType]int

func (c Counts) Add(entity EntityType, n int) {
	if c == nil || n == 0 {
		return
	}
	c[entity] += n
}

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// SortedKeys returns the entity types with nonzero counts in stable order.
func (c Counts) SortedKeys() []EntityType {
	keys := make([]EntityType, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CursorState maps object type to an opaque, connector-defined cursor
// token. Connectors that only support full re-export carry none.
type CursorState map[string]string

// Manifest is written to a connector's staging directory after each
// successful export and read back for cursor resumption and status display.
type Manifest struct {
	ExportedAt  time.Time   `json:"exportedAt"`
	Counts      Counts      `json:"counts"`
	CursorState CursorState `json:"cursorState,omitempty"`
}

// CycleStats is the uniform result of one sync cycle. RunCycle always
// returns a populated value for execution-time failures; Error is set and
// counts are zero, but timestamps stay valid so schedulers can log every
// cycle the same way.
type CycleStats struct {
	Connector      string        `json:"connector"`
	StartedAt      time.Time     `json:"startedAt"`
	FinishedAt     time.Time     `json:"finishedAt"`
	Duration       time.Duration `json:"duration"`
	FullSync       bool          `json:"fullSync"`
	Counts         Counts        `json:"counts"`
	SkippedRecords int           `json:"skippedRecords"`
	CursorState    CursorState   `json:"cursorState,omitempty"`
	Error          string        `json:"error,omitempty"`
}

func (s CycleStats) Failed() bool { return strings.TrimSpace(s.Error) != "" }

// ConnectorStatus is the read-only per-connector view assembled purely
// from manifest reads. Zero values mean "never synced".
type ConnectorStatus struct {
	Connector    string      `json:"connector"`
	LastSyncedAt time.Time   `json:"lastSyncedAt"`
	CursorState  CursorState `json:"cursorState,omitempty"`
	TicketCount  int         `json:"ticketCount"`
}

func (s ConnectorStatus) NeverSynced() bool { return s.LastSyncedAt.IsZero() }

// Timestamp formatting used across staged records and canonical rows.
const TimeLayout = time.RFC3339Nano

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts the canonical layout plus plain RFC3339; connectors
// differ in sub-second precision. Zero time and false on failure.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(TimeLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
