package model

type Group struct {
	GroupID     string `gorm:"column:group_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;index"`
	Name        string `gorm:"column:name;type:text;not null"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (Group) TableName() string {
	return "groups"
}
