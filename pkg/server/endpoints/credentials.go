package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/archipelago-ops/sitevault/pkg/access"
	"github.com/archipelago-ops/sitevault/pkg/audit"
	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

// RegisterCredentialsEndpoints registers the credential read, save and
// delete endpoints.
func RegisterCredentialsEndpoints(s *server.Server) {
	credentials := s.Credentials
	sites := s.Sites

	// GET /sites/{siteID}/credentials - List credentials for a visible site
	s.Router.Handle(
		"/sites/{siteID}/credentials",
		s.Auth.Middleware(handleListCredentials(credentials, sites)),
	).Methods("GET")

	credsRouter := s.Router.PathPrefix("/credentials").Subrouter()
	credsRouter.Use(s.Auth.Middleware)

	// POST /credentials - Create a credential, or update when id is set
	credsRouter.HandleFunc("", handleSaveCredential(credentials, sites)).Methods("POST")

	// GET /credentials/{id}/history - Prior states, most recent first
	credsRouter.HandleFunc("/{id}/history", handleCredentialHistory(credentials, sites)).Methods("GET")

	// DELETE /credentials/{id} - Remove the current row
	credsRouter.HandleFunc("/{id}", handleDeleteCredential(credentials, sites)).Methods("DELETE")
}

// siteVisible recomputes the caller's visibility of a site from the
// reference tables.
func siteVisible(sitesStore store.SitesStore, user *model.User, siteID string) (bool, error) {
	sites, err := sitesStore.ListSites()
	if err != nil {
		return false, err
	}
	permissions, err := sitesStore.ListPermissionsForUser(user.ID)
	if err != nil {
		return false, err
	}
	return access.CanSeeSite(user, siteID, sites, permissions), nil
}

func handleListCredentials(credentials store.CredentialsStore, sites store.SitesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID := mux.Vars(r)["siteID"]

		id, _ := identity.Get(r.Context())
		user := id.User

		if err := access.Authorize(user, access.OpReadCredentials, ""); err != nil {
			audit.Log(audit.FetchEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				Subject:      "site:" + siteID,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		visible, err := siteVisible(sites, user, siteID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if !visible {
			audit.Log(audit.FetchEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				Subject:      "site:" + siteID,
				Success:      false,
				ErrorMessage: "site not visible",
			})
			// An invisible site is indistinguishable from a missing one
			respondWithError(w, http.StatusNotFound, "site not found")
			return
		}

		list, err := credentials.ListBySite(siteID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if list == nil {
			list = []store.Credential{}
		}

		audit.Log(audit.FetchEvent{
			UserID:   user.ID,
			ClientIP: id.RemoteIP,
			Subject:  "site:" + siteID,
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleCredentialHistory(credentials store.CredentialsStore, sites store.SitesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credentialID := mux.Vars(r)["id"]

		id, _ := identity.Get(r.Context())
		user := id.User

		if err := access.Authorize(user, access.OpReadHistory, ""); err != nil {
			audit.Log(audit.FetchEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				Subject:      "credential:" + credentialID,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		credential, err := credentials.Fetch(credentialID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		visible, err := siteVisible(sites, user, credential.SiteID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if !visible {
			respondWithError(w, http.StatusNotFound, "credential not found")
			return
		}

		history, err := credentials.History(credentialID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if history == nil {
			history = []store.HistoryEntry{}
		}

		audit.Log(audit.FetchEvent{
			UserID:   user.ID,
			ClientIP: id.RemoteIP,
			Subject:  "credential:" + credentialID,
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, history)
	}
}

func handleSaveCredential(credentials store.CredentialsStore, sites store.SitesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft store.CredentialDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, _ := identity.Get(r.Context())
		user := id.User

		op := access.OpCreateCredential
		operation := "create"
		if draft.ID != "" {
			op = access.OpUpdateCredential
			operation = "update"
		}

		if err := access.Authorize(user, op, ""); err != nil {
			audit.Log(audit.UpdateEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				CredentialID: draft.ID,
				SiteID:       draft.SiteID,
				Operation:    operation,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		// The site an update touches is the stored one, not whatever the
		// draft claims.
		siteID := draft.SiteID
		if draft.ID != "" {
			existing, err := credentials.Fetch(draft.ID)
			if err != nil {
				respondWithStoreError(w, err)
				return
			}
			siteID = existing.SiteID
		}

		visible, err := siteVisible(sites, user, siteID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if !visible {
			audit.Log(audit.UpdateEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				CredentialID: draft.ID,
				SiteID:       siteID,
				Operation:    operation,
				Success:      false,
				ErrorMessage: "site not visible",
			})
			respondWithError(w, http.StatusNotFound, "site not found")
			return
		}

		var saved *store.Credential
		if draft.ID != "" {
			saved, err = credentials.Update(draft.ID, draft, user.ID)
		} else {
			saved, err = credentials.Create(draft, user.ID)
		}
		if err != nil {
			audit.Log(audit.UpdateEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				CredentialID: draft.ID,
				SiteID:       siteID,
				Operation:    operation,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.UpdateEvent{
			UserID:       user.ID,
			ClientIP:     id.RemoteIP,
			CredentialID: saved.ID,
			SiteID:       saved.SiteID,
			Operation:    operation,
			Success:      true,
		})

		code := http.StatusCreated
		if operation == "update" {
			code = http.StatusOK
		}
		respondWithJSON(w, code, saved)
	}
}

func handleDeleteCredential(credentials store.CredentialsStore, sites store.SitesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credentialID := mux.Vars(r)["id"]

		id, _ := identity.Get(r.Context())
		user := id.User

		if err := access.Authorize(user, access.OpDeleteCredential, ""); err != nil {
			audit.Log(audit.DeleteEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				CredentialID: credentialID,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		credential, err := credentials.Fetch(credentialID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		visible, err := siteVisible(sites, user, credential.SiteID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if !visible {
			respondWithError(w, http.StatusNotFound, "credential not found")
			return
		}

		if err := credentials.Delete(credentialID); err != nil {
			audit.Log(audit.DeleteEvent{
				UserID:       user.ID,
				ClientIP:     id.RemoteIP,
				CredentialID: credentialID,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.DeleteEvent{
			UserID:       user.ID,
			ClientIP:     id.RemoteIP,
			CredentialID: credentialID,
			Success:      true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
