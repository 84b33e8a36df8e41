package model

// Site represents an organizational unit (a hotel property) that scopes
// credentials and permissions.
type Site struct {
	ID      string  `gorm:"column:id;primaryKey" json:"id"`
	Name    string  `gorm:"column:name;not null" json:"name"`
	GroupID *string `gorm:"column:group_id" json:"group_id"`
}

func (Site) TableName() string {
	return "sites"
}
