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

// AccessLevelRequest is the body of an access-level change.
type AccessLevelRequest struct {
	AccessLevel model.AccessLevel `json:"access_level"`
}

// RegisterUsersEndpoints registers the user administration endpoints.
func RegisterUsersEndpoints(s *server.Server) {
	users := s.Users

	usersRouter := s.Router.PathPrefix("/users").Subrouter()
	usersRouter.Use(s.Auth.Middleware)

	usersRouter.HandleFunc("", handleListUsers(users)).Methods("GET")
	usersRouter.HandleFunc("", handleCreateUser(users)).Methods("POST")
	usersRouter.HandleFunc("/{id}/access-level", handleChangeAccessLevel(users)).Methods("PUT")
}

func handleListUsers(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity.Get(r.Context())

		if err := access.Authorize(id.User, access.OpListUsers, ""); err != nil {
			respondWithStoreError(w, err)
			return
		}

		list, err := users.List()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if list == nil {
			list = []model.User{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleCreateUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft store.UserDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, _ := identity.Get(r.Context())

		if err := access.Authorize(id.User, access.OpCreateUser, ""); err != nil {
			respondWithStoreError(w, err)
			return
		}

		created, err := users.Create(draft)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, created)
	}
}

func handleChangeAccessLevel(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID := mux.Vars(r)["id"]

		var body AccessLevelRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		id, _ := identity.Get(r.Context())
		actor := id.User

		if err := access.Authorize(actor, access.OpChangeAccessLevel, targetID); err != nil {
			audit.Log(audit.RoleChangeEvent{
				UserID:       actor.ID,
				ClientIP:     id.RemoteIP,
				TargetUserID: targetID,
				NewLevel:     string(body.AccessLevel),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		updated, err := users.UpdateAccessLevel(targetID, body.AccessLevel)
		if err != nil {
			audit.Log(audit.RoleChangeEvent{
				UserID:       actor.ID,
				ClientIP:     id.RemoteIP,
				TargetUserID: targetID,
				NewLevel:     string(body.AccessLevel),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.RoleChangeEvent{
			UserID:       actor.ID,
			ClientIP:     id.RemoteIP,
			TargetUserID: targetID,
			NewLevel:     string(body.AccessLevel),
			Success:      true,
		})
		respondWithJSON(w, http.StatusOK, updated)
	}
}
