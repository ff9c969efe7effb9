package ports

import "context"

type ExternalMapping struct {
	IntegrationID string
	ObjectType    string
	ExternalID    string
	InternalID    string
	LastSeenAt    string
}

// MappingRepository is the persistent two-way external-ID bridge. The
// triple (integration, object type, external ID) is unique; Upsert
// refreshes last-seen on conflict and never changes an established
// internal ID. No delete is exposed.
type MappingRepository interface {
	Lookup(ctx context.Context, integrationID string, objectType string, externalID string) (internalID string, found bool, err error)
	ReverseLookup(ctx context.Context, integrationID string, objectType string, internalID string) (externalID string, found bool, err error)
	Upsert(ctx context.Context, mapping ExternalMapping) error
	CountByType(ctx context.Context, integrationID string, objectType string) (int64, error)
}

type RawRecord struct {
	IntegrationID string
	ObjectType    string
	ExternalID    string
	Payload       string
	ReceivedAt    string
}

// RawRecordRepository stores the last-received origin payload per external
// object. Put overwrites unconditionally.
type RawRecordRepository interface {
	Put(ctx context.Context, record RawRecord) error
}
