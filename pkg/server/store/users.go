package store

import (
	"errors"
	"strings"

	"github.com/archipelago-ops/sitevault/pkg/model"
)

// ErrUserNotFound is returned when a user doesn't exist.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when a registration reuses an email.
var ErrEmailTaken = errors.New("email is already registered")

// UserDraft carries the fields of a user registration.
type UserDraft struct {
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Position    string            `json:"position"`
	GroupID     *string           `json:"group_id"`
	AccessLevel model.AccessLevel `json:"access_level"`
	Avatar      *string           `json:"avatar,omitempty"`
}

// Validate checks the required registration fields. An absent access
// level is filled with viewer, the weakest tier.
func (d *UserDraft) Validate() error {
	var bad []string
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		bad = append(bad, "email")
	}
	if d.Name == "" {
		bad = append(bad, "name")
	}
	if d.AccessLevel == "" {
		d.AccessLevel = model.AccessLevelViewer
	}
	if !model.ValidAccessLevel(d.AccessLevel) {
		bad = append(bad, "access_level")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// UsersStore abstracts user storage operations.
type UsersStore interface {
	// FindByEmail looks a user up by lowercase email. found is false
	// when no such user is registered.
	FindByEmail(email string) (user *model.User, found bool, err error)

	// List returns all registered users.
	List() ([]model.User, error)

	// Fetch retrieves a user by id.
	// Returns ErrUserNotFound if it doesn't exist.
	Fetch(id string) (*model.User, error)

	// Create registers a new user from the draft. The email is stored
	// lowercase. The draft must pass Validate.
	Create(draft UserDraft) (*model.User, error)

	// UpdateAccessLevel sets the user's access level.
	// Returns ErrUserNotFound if id doesn't exist.
	UpdateAccessLevel(id string, level model.AccessLevel) (*model.User, error)
}
