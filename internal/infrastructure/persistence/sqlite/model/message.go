package model

type Message struct {
	MessageID      string  `gorm:"column:message_id;type:text;primaryKey"`
	ConversationID string  `gorm:"column:conversation_id;type:text;not null;index"`
	AuthorKind     string  `gorm:"column:author_kind;type:text;not null"`
	AuthorID       *string `gorm:"column:author_id;type:text"`
	Visibility     string  `gorm:"column:visibility;type:text;not null"`
	Body           string  `gorm:"column:body;type:text"`
	CreatedAt      string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt      string  `gorm:"column:updated_at;type:text;not null"`
}

func (Message) TableName() string {
	return "messages"
}

type Attachment struct {
	AttachmentID string `gorm:"column:attachment_id;type:text;primaryKey"`
	MessageID    string `gorm:"column:message_id;type:text;not null;index"`
	FileName     string `gorm:"column:file_name;type:text;not null"`
	ContentType  string `gorm:"column:content_type;type:text"`
	SizeBytes    int64  `gorm:"column:size_bytes;not null;default:0"`
	URL          string `gorm:"column:url;type:text"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (Attachment) TableName() string {
	return "attachments"
}
