package model

type TicketForm struct {
	TicketFormID string `gorm:"column:ticket_form_id;type:text;primaryKey"`
	WorkspaceID  string `gorm:"column:workspace_id;type:text;not null;index"`
	Name         string `gorm:"column:name;type:text;not null"`
	Position     int    `gorm:"column:position;not null;default:0"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt    string `gorm:"column:updated_at;type:text;not null"`
}

func (TicketForm) TableName() string {
	return "ticket_forms"
}
