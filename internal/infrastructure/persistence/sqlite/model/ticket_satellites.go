package model

// Satellites keyed off Ticket: audit trail, CSAT ratings, time entries.

type AuditEvent struct {
	AuditEventID string  `gorm:"column:audit_event_id;type:text;primaryKey"`
	TicketID     string  `gorm:"column:ticket_id;type:text;not null;index"`
	ActorID      *string `gorm:"column:actor_id;type:text"`
	Action       string  `gorm:"column:action;type:text;not null"`
	Detail       string  `gorm:"column:detail;type:text"`
	OccurredAt   string  `gorm:"column:occurred_at;type:text;not null"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

type CsatRating struct {
	CsatRatingID string `gorm:"column:csat_rating_id;type:text;primaryKey"`
	TicketID     string `gorm:"column:ticket_id;type:text;not null;index"`
	Score        int    `gorm:"column:score;not null"`
	Comment      string `gorm:"column:comment;type:text"`
	RatedAt      string `gorm:"column:rated_at;type:text;not null"`
}

func (CsatRating) TableName() string {
	return "csat_ratings"
}

type TimeEntry struct {
	TimeEntryID string  `gorm:"column:time_entry_id;type:text;primaryKey"`
	TicketID    string  `gorm:"column:ticket_id;type:text;not null;index"`
	AgentID     *string `gorm:"column:agent_id;type:text"`
	Minutes     int     `gorm:"column:minutes;not null;default:0"`
	Note        string  `gorm:"column:note;type:text"`
	LoggedAt    string  `gorm:"column:logged_at;type:text;not null"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
