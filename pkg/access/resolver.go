package access

import "github.com/archipelago-ops/sitevault/pkg/model"

// VisibleSites returns the sites user may see: every site granted by a
// direct permission, plus every site sharing the user's group. The result
// is deduplicated by site id and preserves the relative order of sites, so
// identical inputs always produce identical output.
func VisibleSites(user *model.User, sites []model.Site, permissions []model.Permission) []model.Site {
	visible := make(map[string]struct{}, len(permissions))

	for _, p := range permissions {
		if p.UserID == user.ID {
			visible[p.SiteID] = struct{}{}
		}
	}

	result := make([]model.Site, 0)
	for _, s := range sites {
		if _, ok := visible[s.ID]; ok {
			result = append(result, s)
			continue
		}
		if user.GroupID != nil && s.GroupID != nil && *s.GroupID == *user.GroupID {
			result = append(result, s)
		}
	}

	return result
}

// CanSeeSite reports whether siteID is in the user's visible set.
func CanSeeSite(user *model.User, siteID string, sites []model.Site, permissions []model.Permission) bool {
	for _, s := range VisibleSites(user, sites, permissions) {
		if s.ID == siteID {
			return true
		}
	}
	return false
}
