package model

const (
	CursorDirectionInbound  = "inbound"
	CursorDirectionOutbound = "outbound"
)

// SyncCursor holds one opaque cursor token per (integration, object type,
// direction). Advanced only after a full successful pass, never mid-batch.
type SyncCursor struct {
	IntegrationID string `gorm:"column:integration_id;type:text;not null;primaryKey"`
	ObjectType    string `gorm:"column:object_type;type:text;not null;primaryKey"`
	Direction     string `gorm:"column:direction;type:text;not null;primaryKey"`
	Token         string `gorm:"column:token;type:text;not null"`
	UpdatedAt     string `gorm:"column:updated_at;type:text;not null"`
}

func (SyncCursor) TableName() string {
	return "sync_cursors"
}
