package model

// Integration status lifecycle: planned -> active -> disabled/error.
const (
	IntegrationStatusPlanned  = "planned"
	IntegrationStatusActive   = "active"
	IntegrationStatusDisabled = "disabled"
	IntegrationStatusError    = "error"
)

type Integration struct {
	IntegrationID string `gorm:"column:integration_id;type:text;primaryKey"`
	WorkspaceID   string `gorm:"column:workspace_id;type:text;not null;uniqueIndex:idx_integrations_workspace_provider"`
	Provider      string `gorm:"column:provider;type:text;not null;uniqueIndex:idx_integrations_workspace_provider"`
	Status        string `gorm:"column:status;type:text;not null"`
	CreatedAt     string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt     string `gorm:"column:updated_at;type:text;not null"`
}

func (Integration) TableName() string {
	return "integrations"
}
