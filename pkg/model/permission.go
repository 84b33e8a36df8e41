package model

// Permission represents a direct visibility grant of a site to a user.
type Permission struct {
	ID     string `gorm:"column:id;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;not null" json:"user_id"`
	SiteID string `gorm:"column:site_id;not null" json:"site_id"`
}

func (Permission) TableName() string {
	return "permissions"
}
