package model

type Customer struct {
	CustomerID     string  `gorm:"column:customer_id;type:text;primaryKey"`
	WorkspaceID    string  `gorm:"column:workspace_id;type:text;not null;index"`
	OrganizationID *string `gorm:"column:organization_id;type:text"`
	Name           string  `gorm:"column:name;type:text;not null"`
	Email          string  `gorm:"column:email;type:text"`
	Phone          string  `gorm:"column:phone;type:text"`
	CreatedAt      string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt      string  `gorm:"column:updated_at;type:text;not null"`
}

func (Customer) TableName() string {
	return "customers"
}
