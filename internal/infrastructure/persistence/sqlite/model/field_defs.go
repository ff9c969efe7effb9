package model

// CustomField, View and SLAPolicy are independent definition entities:
// no cross-entity references, ingested before tickets.

type CustomField struct {
	CustomFieldID string `gorm:"column:custom_field_id;type:text;primaryKey"`
	WorkspaceID   string `gorm:"column:workspace_id;type:text;not null;index"`
	Name          string `gorm:"column:name;type:text;not null"`
	FieldType     string `gorm:"column:field_type;type:text;not null"`
	CreatedAt     string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt     string `gorm:"column:updated_at;type:text;not null"`
}

func (CustomField) TableName() string {
	return "custom_fields"
}

type View struct {
	ViewID      string `gorm:"column:view_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;index"`
	Name        string `gorm:"column:name;type:text;not null"`
	Definition  string `gorm:"column:definition;type:text"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (View) TableName() string {
	return "views"
}

type SLAPolicy struct {
	SLAPolicyID string `gorm:"column:sla_policy_id;type:text;primaryKey"`
	WorkspaceID string `gorm:"column:workspace_id;type:text;not null;index"`
	Name        string `gorm:"column:name;type:text;not null"`
	Definition  string `gorm:"column:definition;type:text"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (SLAPolicy) TableName() string {
	return "sla_policies"
}
