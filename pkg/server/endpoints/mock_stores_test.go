package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"

	"github.com/archipelago-ops/sitevault/pkg/identity"
	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
)

// MockCredentialsStore implements store.CredentialsStore for testing using testify/mock
type MockCredentialsStore struct {
	mock.Mock
}

func NewMockCredentialsStore() *MockCredentialsStore {
	return &MockCredentialsStore{}
}

func (m *MockCredentialsStore) ListBySite(siteID string) ([]store.Credential, error) {
	args := m.Called(siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Credential), args.Error(1)
}

func (m *MockCredentialsStore) Fetch(id string) (*store.Credential, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Credential), args.Error(1)
}

func (m *MockCredentialsStore) Create(draft store.CredentialDraft, actorID string) (*store.Credential, error) {
	args := m.Called(draft, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Credential), args.Error(1)
}

func (m *MockCredentialsStore) Update(id string, draft store.CredentialDraft, actorID string) (*store.Credential, error) {
	args := m.Called(id, draft, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Credential), args.Error(1)
}

func (m *MockCredentialsStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCredentialsStore) History(id string) ([]store.HistoryEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.HistoryEntry), args.Error(1)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) FindByEmail(email string) (*model.User, bool, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

func (m *MockUsersStore) List() ([]model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) Fetch(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) Create(draft store.UserDraft) (*model.User, error) {
	args := m.Called(draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) UpdateAccessLevel(id string, level model.AccessLevel) (*model.User, error) {
	args := m.Called(id, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockSitesStore implements store.SitesStore for testing using testify/mock
type MockSitesStore struct {
	mock.Mock
}

func NewMockSitesStore() *MockSitesStore {
	return &MockSitesStore{}
}

func (m *MockSitesStore) ListSites() ([]model.Site, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Site), args.Error(1)
}

func (m *MockSitesStore) ListPermissionsForUser(userID string) ([]model.Permission, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Permission), args.Error(1)
}

// requestWithIdentity builds a request carrying a resolved identity
func requestWithIdentity(method, target, body string, user *model.User) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := identity.Set(req.Context(), &identity.Identity{
		User:      user,
		Principal: user.Email,
		RemoteIP:  "127.0.0.1",
	})
	return req.WithContext(ctx)
}

func withMuxVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}
