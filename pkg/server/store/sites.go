package store

import "github.com/archipelago-ops/sitevault/pkg/model"

// SitesStore abstracts the reference tables visibility resolution reads.
// Sites, groups and permissions are static reference data relative to the
// credential engine; visibility itself is computed in pkg/access.
type SitesStore interface {
	// ListSites returns all sites in stable storage order.
	ListSites() ([]model.Site, error)

	// ListPermissionsForUser returns the direct grants held by a user.
	ListPermissionsForUser(userID string) ([]model.Permission, error)
}
