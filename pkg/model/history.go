package model

import "time"

// CredentialHistory is an immutable snapshot of a credential's state as it
// was immediately before an update. Rows are append-only and may outlive
// the credential they reference.
type CredentialHistory struct {
	ID            string    `gorm:"column:id;primaryKey"`
	CredentialID  string    `gorm:"column:credential_id;not null"`
	Description   string    `gorm:"column:description"`
	Username      string    `gorm:"column:username"`
	EncodedSecret string    `gorm:"column:encoded_secret"`
	ChangedBy     string    `gorm:"column:changed_by;not null"`
	ChangeDate    time.Time `gorm:"column:change_date;not null"`
}

func (CredentialHistory) TableName() string {
	return "credential_history"
}
