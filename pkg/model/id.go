package model

import "github.com/google/uuid"

// NewID returns a new random identifier. Every table's primary key is
// generated through this so ids are globally unique across tables.
func NewID() string {
	return uuid.NewString()
}
