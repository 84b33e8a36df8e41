package model

// Group is a coarse organizational unit. Users and sites that share a
// group see each other without direct permissions.
type Group struct {
	ID   string `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (Group) TableName() string {
	return "groups"
}
