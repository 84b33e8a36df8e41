package model

import "time"

// Category classifies what kind of login a credential is.
type Category string

const (
	CategoryAdmin  Category = "Admin"
	CategoryWiFi   Category = "WiFi"
	CategoryPMS    Category = "PMS"
	CategoryVendor Category = "Vendor"
	CategorySocial Category = "Social"
	CategoryOther  Category = "Other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryAdmin, CategoryWiFi, CategoryPMS, CategoryVendor, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// Credential is the current row for a stored login secret. The secret is
// always persisted encoded; decoding happens at the store boundary.
type Credential struct {
	ID            string    `gorm:"column:id;primaryKey"`
	SiteID        string    `gorm:"column:site_id;not null"`
	Description   string    `gorm:"column:description"`
	Username      string    `gorm:"column:username"`
	EncodedSecret string    `gorm:"column:encoded_secret"`
	Category      Category  `gorm:"column:category;not null"`
	CreatedBy     string    `gorm:"column:created_by;not null"`
	LastEdited    time.Time `gorm:"column:last_edited;not null"`
	LastEditedBy  string    `gorm:"column:last_edited_by;not null"`
}

func (Credential) TableName() string {
	return "credentials"
}
