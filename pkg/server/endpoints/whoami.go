package endpoints

import (
	"net/http"

	"github.com/archipelago-ops/sitevault/pkg/audit"
	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Position    string            `json:"position,omitempty"`
	GroupID     *string           `json:"group_id,omitempty"`
	AccessLevel model.AccessLevel `json:"access_level"`
	Avatar      *string           `json:"avatar,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(s.Auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || id.User == nil {
			respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}
		user := id.User

		audit.Log(audit.LoginEvent{
			Principal: id.Principal,
			UserID:    user.ID,
			ClientIP:  id.RemoteIP,
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, WhoamiResponse{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Position:    user.Position,
			GroupID:     user.GroupID,
			AccessLevel: user.AccessLevel,
			Avatar:      user.Avatar,
		})
	}
}
