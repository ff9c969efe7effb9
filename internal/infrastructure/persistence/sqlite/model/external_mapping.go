package model

// ExternalObjectMapping is the idempotency anchor: the triple
// (integration_id, object_type, external_id) is unique and maps to exactly
// one internal ID. Rows are upserted on every ingestion touch and never
// deleted, so replays dedup across cycles.
type ExternalObjectMapping struct {
	IntegrationID string `gorm:"column:integration_id;type:text;not null;primaryKey"`
	ObjectType    string `gorm:"column:object_type;type:text;not null;primaryKey"`
	ExternalID    string `gorm:"column:external_id;type:text;not null;primaryKey"`
	InternalID    string `gorm:"column:internal_id;type:text;not null"`
	LastSeenAt    string `gorm:"column:last_seen_at;type:text;not null"`
}

func (ExternalObjectMapping) TableName() string {
	return "external_object_mappings"
}
