package model

// RawRecord keeps the last untranslated origin payload per external object
// for audit and replay. Overwritten, never appended, on re-ingestion.
type RawRecord struct {
	IntegrationID string `gorm:"column:integration_id;type:text;not null;primaryKey"`
	ObjectType    string `gorm:"column:object_type;type:text;not null;primaryKey"`
	ExternalID    string `gorm:"column:external_id;type:text;not null;primaryKey"`
	Payload       string `gorm:"column:payload;type:text;not null"`
	ReceivedAt    string `gorm:"column:received_at;type:text;not null"`
}

func (RawRecord) TableName() string {
	return "raw_records"
}
