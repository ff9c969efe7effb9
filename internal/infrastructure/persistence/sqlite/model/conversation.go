package model

// Conversation is 1:1 with Ticket, created alongside it on first sighting.
type Conversation struct {
	ConversationID string `gorm:"column:conversation_id;type:text;primaryKey"`
	TicketID       string `gorm:"column:ticket_id;type:text;not null;uniqueIndex"`
	CreatedAt      string `gorm:"column:created_at;type:text;not null"`
}

func (Conversation) TableName() string {
	return "conversations"
}
