package endpoints

import (
	"github.com/archipelago-ops/sitevault/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoint(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterSitesEndpoints(srv)
	RegisterCredentialsEndpoints(srv)
	RegisterUsersEndpoints(srv)
}
