package model

// AccessLevel is the capability tier assigned to a user. Tiers are
// monotonic: manager includes viewer, admin includes manager.
type AccessLevel string

const (
	AccessLevelViewer  AccessLevel = "viewer"
	AccessLevelManager AccessLevel = "manager"
	AccessLevelAdmin   AccessLevel = "admin"
)

// ValidAccessLevel reports whether level is one of the known tiers.
func ValidAccessLevel(level AccessLevel) bool {
	switch level {
	case AccessLevelViewer, AccessLevelManager, AccessLevelAdmin:
		return true
	}
	return false
}

// User represents a registered principal.
type User struct {
	ID          string      `gorm:"column:id;primaryKey" json:"id"`
	Email       string      `gorm:"column:email;not null" json:"email"`
	Name        string      `gorm:"column:name" json:"name"`
	Position    string      `gorm:"column:position" json:"position"`
	GroupID     *string     `gorm:"column:group_id" json:"group_id"`
	AccessLevel AccessLevel `gorm:"column:access_level;not null" json:"access_level"`
	Avatar      *string     `gorm:"column:avatar" json:"avatar,omitempty"`
}

func (User) TableName() string {
	return "users"
}
