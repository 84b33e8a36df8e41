package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/server/middleware"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

type Server struct {
	Credentials store.CredentialsStore
	Users       store.UsersStore
	Sites       store.SitesStore
	Auth        *middleware.SessionAuthenticator
	Router      *mux.Router
	DB          *gorm.DB
	srv         *http.Server
}

func NewServer(
	credentials store.CredentialsStore,
	users store.UsersStore,
	sites store.SitesStore,
	sessionKey []byte,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	auth := middleware.NewSessionAuthenticator(sessionKey, identity.NewResolver(users))

	return &Server{
		Credentials: credentials,
		Users:       users,
		Sites:       sites,
		Auth:        auth,
		Router:      router,
		DB:          db,
		srv:         srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
