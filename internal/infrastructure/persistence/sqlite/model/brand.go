package model

type Brand struct {
	BrandID     string `gorm:"column:brand_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;index"`
	Name        string `gorm:"column:name;type:text;not null"`
	Subdomain   string `gorm:"column:subdomain;type:text"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (Brand) TableName() string {
	return "brands"
}
