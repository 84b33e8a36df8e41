package endpoints

import (
	"net/http"

	"github.com/archipelago-ops/sitevault/pkg/access"
	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

// RegisterSitesEndpoints registers the site listing endpoint.
func RegisterSitesEndpoints(s *server.Server) {
	sitesRouter := s.Router.PathPrefix("/sites").Subrouter()
	sitesRouter.Use(s.Auth.Middleware)

	sitesRouter.HandleFunc("", handleListSites(s.Sites)).Methods("GET")
}

// handleListSites returns the sites visible to the caller: direct grants
// plus group membership, recomputed on every request so revocations take
// effect immediately.
func handleListSites(sitesStore store.SitesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity.Get(r.Context())
		user := id.User

		sites, err := sitesStore.ListSites()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		permissions, err := sitesStore.ListPermissionsForUser(user.ID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		visible := access.VisibleSites(user, sites, permissions)
		if visible == nil {
			visible = []model.Site{}
		}
		respondWithJSON(w, http.StatusOK, visible)
	}
}
