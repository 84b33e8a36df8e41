package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/archipelago-ops/sitevault/pkg/access"
	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithStoreError maps store and access errors onto the HTTP
// surface. Unrecognized errors are internal.
func respondWithStoreError(w http.ResponseWriter, err error) {
	var validation *store.ValidationError

	switch {
	case errors.Is(err, identity.ErrNotRegistered):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, access.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrCredentialNotFound),
		errors.Is(err, store.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
