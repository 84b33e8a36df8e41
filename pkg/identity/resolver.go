package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/archipelago-ops/sitevault/pkg/model"
)

// ErrNotRegistered is returned when a principal has no matching user.
var ErrNotRegistered = errors.New("principal is not registered")

// UserFinder is the lookup a Resolver needs from the persistence layer.
type UserFinder interface {
	// FindByEmail returns the user stored under the lowercase email, with
	// found=false when no such user exists. err is reserved for
	// persistence failures.
	FindByEmail(email string) (user *model.User, found bool, err error)
}

// Resolver maps verified principal identifiers to registered users.
type Resolver struct {
	users UserFinder
}

// NewResolver creates a Resolver over the given user lookup.
func NewResolver(users UserFinder) *Resolver {
	return &Resolver{users: users}
}

// Resolve looks up the user registered under principal's email,
// case-insensitively. Unknown principals fail closed: the caller gets
// ErrNotRegistered and never a partially-populated user.
func (r *Resolver) Resolve(ctx context.Context, principal string) (*model.User, error) {
	principal = strings.ToLower(strings.TrimSpace(principal))
	if principal == "" {
		return nil, ErrNotRegistered
	}

	user, found, err := r.users.FindByEmail(principal)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, principal)
	}

	return user, nil
}
