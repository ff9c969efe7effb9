package model

type Workspace struct {
	WorkspaceID string `gorm:"column:workspace_id;type:text;primaryKey"`
	Name        string `gorm:"column:name;type:text;not null"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
