package sync

import "strings"

// Canonical ticket vocabulary. Every connector's values are normalized to
// these on ingest and translated back out on push.
const (
	StatusNew     = "new"
	StatusOpen    = "open"
	StatusPending = "pending"
	StatusOnHold  = "on_hold"
	StatusSolved  = "solved"
	StatusClosed  = "closed"

	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Message author classification and visibility values.
const (
	AuthorKindUser     = "user"
	AuthorKindCustomer = "customer"
	AuthorKindSystem   = "system"

	VisibilityPublic   = "public"
	VisibilityInternal = "internal"
)

// Vocabulary is a two-way field-value table for one provider. Outbound maps
// canonical values to the origin enumeration; Inbound is the reverse.
// Lookups that miss fall back to the explicit fallback value, never blank.
type Vocabulary struct {
	Provider string

	StatusOut        map[string]string
	StatusIn         map[string]string
	StatusFallback   string
	PriorityOut      map[string]string
	PriorityIn       map[string]string
	PriorityFallback string
}

// TranslateStatus maps a canonical status to the origin vocabulary.
func (v Vocabulary) TranslateStatus(canonical string) string {
	if out, ok := v.StatusOut[strings.ToLower(strings.TrimSpace(canonical))]; ok {
		return out
	}
	return v.StatusFallback
}

// TranslatePriority maps a canonical priority to the origin vocabulary.
func (v Vocabulary) TranslatePriority(canonical string) string {
	if out, ok := v.PriorityOut[strings.ToLower(strings.TrimSpace(canonical))]; ok {
		return out
	}
	return v.PriorityFallback
}

// NormalizeStatus maps an origin status into the canonical vocabulary.
func (v Vocabulary) NormalizeStatus(origin string) string {
	if in, ok := v.StatusIn[strings.ToLower(strings.TrimSpace(origin))]; ok {
		return in
	}
	return StatusOpen
}

// NormalizePriority maps an origin priority into the canonical vocabulary.
func (v Vocabulary) NormalizePriority(origin string) string {
	if in, ok := v.PriorityIn[strings.ToLower(strings.TrimSpace(origin))]; ok {
		return in
	}
	return PriorityNormal
}

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[strings.ToLower(val)] = k
	}
	return out
}

func newVocabulary(provider string, statusOut, priorityOut map[string]string, statusFallback, priorityFallback string) Vocabulary {
	return Vocabulary{
		Provider:         provider,
		StatusOut:        statusOut,
		StatusIn:         invert(statusOut),
		StatusFallback:   statusFallback,
		PriorityOut:      priorityOut,
		PriorityIn:       invert(priorityOut),
		PriorityFallback: priorityFallback,
	}
}

var vocabularies = map[string]Vocabulary{
	"zendesk": newVocabulary("zendesk",
		map[string]string{
			StatusNew: "new", StatusOpen: "open", StatusPending: "pending",
			StatusOnHold: "hold", StatusSolved: "solved", StatusClosed: "closed",
		},
		map[string]string{
			PriorityLow: "low", PriorityNormal: "normal",
			PriorityHigh: "high", PriorityUrgent: "urgent",
		},
		"open", "normal",
	),
	"freshdesk": newVocabulary("freshdesk",
		map[string]string{
			StatusNew: "2", StatusOpen: "2", StatusPending: "3",
			StatusOnHold: "3", StatusSolved: "4", StatusClosed: "5",
		},
		map[string]string{
			PriorityLow: "1", PriorityNormal: "2",
			PriorityHigh: "3", PriorityUrgent: "4",
		},
		"2", "2",
	),
	"kayako": newVocabulary("kayako",
		map[string]string{
			StatusNew: "NEW", StatusOpen: "OPEN", StatusPending: "PENDING",
			StatusOnHold: "HOLD", StatusSolved: "COMPLETED", StatusClosed: "CLOSED",
		},
		map[string]string{
			PriorityLow: "LOW", PriorityNormal: "NORMAL",
			PriorityHigh: "HIGH", PriorityUrgent: "URGENT",
		},
		"OPEN", "NORMAL",
	),
}

// VocabularyFor returns the provider's translation tables. Unknown
// providers get an identity-ish zendesk-shaped table so values still
// normalize instead of passing through raw.
func VocabularyFor(provider string) Vocabulary {
	if v, ok := vocabularies[strings.ToLower(strings.TrimSpace(provider))]; ok {
		return v
	}
	return vocabularies["zendesk"]
}
