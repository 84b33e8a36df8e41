package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/model"
)

var testSessionKey = []byte("0123456789abcdef0123456789abcdef")

type fakeUserFinder struct {
	users map[string]*model.User
}

func (f *fakeUserFinder) FindByEmail(email string) (*model.User, bool, error) {
	user, ok := f.users[email]
	return user, ok, nil
}

func newTestAuthenticator(users ...*model.User) *SessionAuthenticator {
	finder := &fakeUserFinder{users: map[string]*model.User{}}
	for _, u := range users {
		finder.users[u.Email] = u
	}
	return NewSessionAuthenticator(testSessionKey, identity.NewResolver(finder))
}

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken(testSessionKey, "alice@globalresorts.com", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestMiddleware_MissingAuthorization(t *testing.T) {
	auth := newTestAuthenticator()

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization missing", rec.Body.String())
}

func TestMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	auth := newTestAuthenticator()

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"token scheme", `Token token="abc"`},
		{"random string", "something random"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	auth := newTestAuthenticator()

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name  string
		token string
	}{
		{"not a jwt", "garbage"},
		{"wrong key", mustToken(t, []byte("another-key-another-key-another!"), "alice@globalresorts.com", time.Hour)},
		{"expired", mustToken(t, testSessionKey, "alice@globalresorts.com", -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Invalid session token", rec.Body.String())
		})
	}
}

func TestMiddleware_UnregisteredPrincipal(t *testing.T) {
	t.Setenv("SITEVAULT_CONFIG_PATH", t.TempDir())
	auth := newTestAuthenticator()

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	token := mustToken(t, testSessionKey, "mallory@example.com", time.Hour)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Principal is not registered", rec.Body.String())
}

func TestMiddleware_ResolvesIdentity(t *testing.T) {
	t.Setenv("SITEVAULT_CONFIG_PATH", t.TempDir())
	user := &model.User{
		ID:          "u1",
		Email:       "alice@globalresorts.com",
		Name:        "Alice",
		AccessLevel: model.AccessLevelManager,
	}
	auth := newTestAuthenticator(user)

	var got *identity.Identity
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = identity.Get(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Mixed-case principal resolves to the lowercase-registered user
	token := mustToken(t, testSessionKey, "Alice@GlobalResorts.com", time.Hour)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, "alice@globalresorts.com", got.Principal)
	assert.NotEmpty(t, got.RemoteIP)
}

func TestClientIP(t *testing.T) {
	t.Setenv("SITEVAULT_CONFIG_PATH", t.TempDir())

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "203.0.113.5:44321"
	assert.Equal(t, "203.0.113.5", ClientIP(req))

	// X-Forwarded-For from an untrusted peer is ignored
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	assert.Equal(t, "203.0.113.5", ClientIP(req))
}

func mustToken(t *testing.T, key []byte, email string, ttl time.Duration) string {
	t.Helper()
	token, err := NewSessionToken(key, email, ttl)
	require.NoError(t, err)
	return token
}
