package model

// User is an internal staff member (agent/admin). Customers flagged as
// staff in the origin export are materialized both as Customer and User.
type User struct {
	UserID      string  `gorm:"column:user_id;type:text;primaryKey"`
	WorkspaceID string  `gorm:"column:workspace_id;type:text;not null;index"`
	GroupID     *string `gorm:"column:group_id;type:text"`
	Name        string  `gorm:"column:name;type:text;not null"`
	Email       string  `gorm:"column:email;type:text"`
	Role        string  `gorm:"column:role;type:text;not null"`
	CreatedAt   string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string  `gorm:"column:updated_at;type:text;not null"`
}

func (User) TableName() string {
	return "users"
}
