package gorm

import (
	"gorm.io/gorm"

	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

// Ensure SitesStore implements store.SitesStore
var _ store.SitesStore = (*SitesStore)(nil)

// SitesStore implements store.SitesStore using GORM
type SitesStore struct {
	db *gorm.DB
}

// NewSitesStore creates a new SitesStore
func NewSitesStore(db *gorm.DB) *SitesStore {
	return &SitesStore{db: db}
}

// ListSites returns all sites. The order is fixed by name so visibility
// resolution over the result is reproducible.
func (s *SitesStore) ListSites() ([]model.Site, error) {
	var sites []model.Site
	if err := s.db.Order("name asc").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// ListPermissionsForUser returns the direct grants held by a user.
func (s *SitesStore) ListPermissionsForUser(userID string) ([]model.Permission, error) {
	var permissions []model.Permission
	if err := s.db.Where("user_id = ?", userID).Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}
