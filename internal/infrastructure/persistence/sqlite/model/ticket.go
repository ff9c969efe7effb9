package model

type Ticket struct {
	TicketID       string  `gorm:"column:ticket_id;type:text;primaryKey"`
	WorkspaceID    string  `gorm:"column:workspace_id;type:text;not null;index"`
	Subject        string  `gorm:"column:subject;type:text;not null"`
	Description    string  `gorm:"column:description;type:text"`
	Status         string  `gorm:"column:status;type:text;not null"`
	Priority       string  `gorm:"column:priority;type:text;not null"`
	RequesterID    string  `gorm:"column:requester_id;type:text;not null"`
	AssigneeID     *string `gorm:"column:assignee_id;type:text"`
	GroupID        *string `gorm:"column:group_id;type:text"`
	BrandID        *string `gorm:"column:brand_id;type:text"`
	TicketFormID   *string `gorm:"column:ticket_form_id;type:text"`
	OrganizationID *string `gorm:"column:organization_id;type:text"`
	CreatedAt      string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt      string  `gorm:"column:updated_at;type:text;not null;index"`
}

func (Ticket) TableName() string {
	return "tickets"
}
