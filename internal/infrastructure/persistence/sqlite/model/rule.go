package model

type Rule struct {
	RuleID      string `gorm:"column:rule_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;index"`
	Name        string `gorm:"column:name;type:text;not null"`
	Definition  string `gorm:"column:definition;type:text"`
	Active      bool   `gorm:"column:active;not null;default:1"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (Rule) TableName() string {
	return "rules"
}
