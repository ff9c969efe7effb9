package model

type KBArticle struct {
	KBArticleID string `gorm:"column:kb_article_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;index"`
	Title       string `gorm:"column:title;type:text;not null"`
	Body        string `gorm:"column:body;type:text"`
	State       string `gorm:"column:state;type:text;not null"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (KBArticle) TableName() string {
	return "kb_articles"
}
