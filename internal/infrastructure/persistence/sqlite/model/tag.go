package model

// Tag is workspace-scoped: (workspace_id, name) is unique.
type Tag struct {
	TagID       string `gorm:"column:tag_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;uniqueIndex:idx_tags_workspace_name"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex:idx_tags_workspace_name"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

type TicketTag struct {
	TicketID string `gorm:"column:ticket_id;type:text;not null;primaryKey"`
	TagID    string `gorm:"column:tag_id;type:text;not null;primaryKey"`
}

func (TicketTag) TableName() string {
	return "ticket_tags"
}
