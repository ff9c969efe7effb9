package model

type Organization struct {
	OrganizationID string `gorm:"column:organization_id;type:text;primaryKey"`
	WorkspaceID    string `gorm:"column:workspace_id;type:text;not null;index"`
	Name           string `gorm:"column:name;type:text;not null"`
	Domain         string `gorm:"column:domain;type:text"`
	Notes          string `gorm:"column:notes;type:text"`
	CreatedAt      string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt      string `gorm:"column:updated_at;type:text;not null"`
}

func (Organization) TableName() string {
	return "organizations"
}
