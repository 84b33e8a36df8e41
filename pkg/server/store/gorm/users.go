package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// FindByEmail looks a user up by lowercase email.
func (s *UsersStore) FindByEmail(email string) (*model.User, bool, error) {
	var user model.User
	tx := s.db.Where("email = ?", strings.ToLower(email)).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, tx.Error
	}
	return &user, true, nil
}

// List returns all registered users.
func (s *UsersStore) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("name asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Fetch retrieves a user by id.
func (s *UsersStore) Fetch(id string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("id = ?", id).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// Create registers a new user from the draft.
func (s *UsersStore) Create(draft store.UserDraft) (*model.User, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(draft.Email)
	if _, taken, err := s.FindByEmail(email); err != nil {
		return nil, err
	} else if taken {
		return nil, store.ErrEmailTaken
	}

	user := model.User{
		ID:          model.NewID(),
		Email:       email,
		Name:        draft.Name,
		Position:    draft.Position,
		GroupID:     draft.GroupID,
		AccessLevel: draft.AccessLevel,
		Avatar:      draft.Avatar,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAccessLevel sets the user's access level.
func (s *UsersStore) UpdateAccessLevel(id string, level model.AccessLevel) (*model.User, error) {
	if !model.ValidAccessLevel(level) {
		return nil, &store.ValidationError{Fields: []string{"access_level"}}
	}

	tx := s.db.Model(&model.User{}).Where("id = ?", id).Update("access_level", level)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrUserNotFound
	}

	return s.Fetch(id)
}
