package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archipelago-ops/sitevault/pkg/model"
)

func strptr(s string) *string { return &s }

func TestVisibleSites(t *testing.T) {
	sites := []model.Site{
		{ID: "h1", Name: "Grand Archipelago Bali", GroupID: strptr("g1")},
		{ID: "h2", Name: "Archipelago City Jakarta", GroupID: strptr("g2")},
		{ID: "h3", Name: "Harbourfront Lodge", GroupID: nil},
	}

	tests := []struct {
		name        string
		user        *model.User
		permissions []model.Permission
		expected    []string
	}{
		{
			name:     "group membership only",
			user:     &model.User{ID: "u1", GroupID: strptr("g1")},
			expected: []string{"h1"},
		},
		{
			name: "direct permission only",
			user: &model.User{ID: "u1"},
			permissions: []model.Permission{
				{ID: "p1", UserID: "u1", SiteID: "h2"},
			},
			expected: []string{"h2"},
		},
		{
			name: "union of direct and group grants",
			user: &model.User{ID: "u1", GroupID: strptr("g1")},
			permissions: []model.Permission{
				{ID: "p1", UserID: "u1", SiteID: "h3"},
			},
			expected: []string{"h1", "h3"},
		},
		{
			name: "overlapping grants deduplicated",
			user: &model.User{ID: "u1", GroupID: strptr("g1")},
			permissions: []model.Permission{
				{ID: "p1", UserID: "u1", SiteID: "h1"},
				{ID: "p2", UserID: "u1", SiteID: "h1"},
			},
			expected: []string{"h1"},
		},
		{
			name: "other users' permissions ignored",
			user: &model.User{ID: "u1"},
			permissions: []model.Permission{
				{ID: "p1", UserID: "u2", SiteID: "h1"},
			},
			expected: []string{},
		},
		{
			name:     "no group and no permissions sees nothing",
			user:     &model.User{ID: "u1"},
			expected: []string{},
		},
		{
			name:     "nil site group does not match nil user group",
			user:     &model.User{ID: "u1", GroupID: nil},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := VisibleSites(tt.user, sites, tt.permissions)

			ids := make([]string, 0, len(result))
			for _, s := range result {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestVisibleSitesPreservesInputOrder(t *testing.T) {
	sites := []model.Site{
		{ID: "h3", GroupID: strptr("g1")},
		{ID: "h1", GroupID: strptr("g1")},
		{ID: "h2", GroupID: strptr("g1")},
	}
	user := &model.User{ID: "u1", GroupID: strptr("g1")}

	first := VisibleSites(user, sites, nil)
	second := VisibleSites(user, sites, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, "h3", first[0].ID)
	assert.Equal(t, "h1", first[1].ID)
	assert.Equal(t, "h2", first[2].ID)
}

func TestCanSeeSite(t *testing.T) {
	sites := []model.Site{
		{ID: "h1", GroupID: strptr("g1")},
		{ID: "h2", GroupID: strptr("g2")},
	}
	user := &model.User{ID: "u1", GroupID: strptr("g1")}

	assert.True(t, CanSeeSite(user, "h1", sites, nil))
	assert.False(t, CanSeeSite(user, "h2", sites, nil))
	assert.False(t, CanSeeSite(user, "missing", sites, nil))
}
