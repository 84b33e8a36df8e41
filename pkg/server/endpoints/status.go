package endpoints

import (
	"net/http"
	"os"

	"github.com/archipelago-ops/sitevault/pkg/server"
)

// StatusResponse represents the response from the /status endpoint
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoint registers the health endpoint. It requires no
// authentication so load balancers can probe it.
func RegisterStatusEndpoint(s *server.Server) {
	db := s.DB

	s.Router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("SITEVAULT_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Version: version,
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}).Methods("GET")
}
