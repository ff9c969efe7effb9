package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/ports"
)

// pass is the per-ingestion arena: the external-to-internal ID maps built
// while walking one batch, plus the integration context. It is explicit
// local state, never shared, so concurrent passes for different
// integrations cannot interfere.
type pass struct {
	svc         *Service
	workspace   ports.Workspace
	integration ports.Integration
	vocab       domainsync.Vocabulary
	now         string

	// refs caches resolved mappings per object type for the duration of
	// the pass. Misses fall through to the mapping store once.
	refs map[domainsync.EntityType]map[string]string
}

func newPass(svc *Service, workspace ports.Workspace, integration ports.Integration) *pass {
	return &pass{
		svc:         svc,
		workspace:   workspace,
		integration: integration,
		vocab:       domainsync.VocabularyFor(integration.Provider),
		now:         domainsync.FormatTime(time.Now()),
		refs:        make(map[domainsync.EntityType]map[string]string),
	}
}

// resolve returns the internal ID bound to (entity, externalID), first
// from the arena, then from the mapping store.
func (p *pass) resolve(ctx context.Context, entity domainsync.EntityType, externalID string) (string, bool, error) {
	if externalID == "" {
		return "", false, nil
	}
	if id, ok := p.refs[entity][externalID]; ok {
		return id, true, nil
	}

	id, found, err := p.svc.mappings.Lookup(ctx, p.integration.IntegrationID, string(entity), externalID)
	if err != nil {
		return "", false, err
	}
	if found {
		p.remember(entity, externalID, id)
	}
	return id, found, nil
}

// resolveOptional is resolve for nilable foreign keys.
func (p *pass) resolveOptional(ctx context.Context, entity domainsync.EntityType, externalID string) (*string, error) {
	id, found, err := p.resolve(ctx, entity, externalID)
	if err != nil || !found {
		return nil, err
	}
	return &id, nil
}

// bind upserts the mapping and caches it in the arena. Both the insert and
// the update ingestion path end here, refreshing last-seen.
func (p *pass) bind(ctx context.Context, entity domainsync.EntityType, externalID string, internalID string) error {
	err := p.svc.mappings.Upsert(ctx, ports.ExternalMapping{
		IntegrationID: p.integration.IntegrationID,
		ObjectType:    string(entity),
		ExternalID:    externalID,
		InternalID:    internalID,
		LastSeenAt:    p.now,
	})
	if err != nil {
		return err
	}
	p.remember(entity, externalID, internalID)
	return nil
}

func (p *pass) remember(entity domainsync.EntityType, externalID string, internalID string) {
	byExt, ok := p.refs[entity]
	if !ok {
		byExt = make(map[string]string)
		p.refs[entity] = byExt
	}
	byExt[externalID] = internalID
}

// resolveOrNew returns the mapped internal ID, or mints a fresh one for a
// first sighting. The caller must bind after a successful save.
func (p *pass) resolveOrNew(ctx context.Context, entity domainsync.EntityType, externalID string) (string, error) {
	id, found, err := p.resolve(ctx, entity, externalID)
	if err != nil {
		return "", err
	}
	if !found {
		id = uuid.NewString()
	}
	return id, nil
}

// touchRaw overwrites the stored origin payload. Unconditional: replay
// always reflects the latest export, changed or not.
func (p *pass) touchRaw(ctx context.Context, entity domainsync.EntityType, externalID string, payload json.RawMessage) error {
	return p.svc.raws.Put(ctx, ports.RawRecord{
		IntegrationID: p.integration.IntegrationID,
		ObjectType:    string(entity),
		ExternalID:    externalID,
		Payload:       string(payload),
		ReceivedAt:    p.now,
	})
}

// orNow falls back to the pass timestamp for records without one.
func (p *pass) orNow(raw string) string {
	if raw == "" {
		return p.now
	}
	if t, ok := domainsync.ParseTime(raw); ok {
		return domainsync.FormatTime(t)
	}
	return p.now
}
