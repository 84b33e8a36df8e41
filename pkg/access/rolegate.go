package access

import (
	"errors"

	"github.com/archipelago-ops/sitevault/pkg/model"
)

// ErrPermissionDenied is returned when Authorize refuses an operation.
var ErrPermissionDenied = errors.New("permission denied")

// Operation names an action gated by access level.
type Operation string

const (
	OpReadCredentials   Operation = "read-credentials"
	OpReadHistory       Operation = "read-history"
	OpCreateCredential  Operation = "create-credential"
	OpUpdateCredential  Operation = "update-credential"
	OpDeleteCredential  Operation = "delete-credential"
	OpListUsers         Operation = "list-users"
	OpCreateUser        Operation = "create-user"
	OpChangeAccessLevel Operation = "change-access-level"
)

// rank orders the tiers. Capabilities are monotone: a higher tier holds
// every capability of the tiers below it.
func rank(level model.AccessLevel) int {
	switch level {
	case model.AccessLevelViewer:
		return 0
	case model.AccessLevelManager:
		return 1
	case model.AccessLevelAdmin:
		return 2
	}
	return -1
}

// minLevel is the weakest tier allowed to perform each operation.
var minLevel = map[Operation]model.AccessLevel{
	OpReadCredentials:   model.AccessLevelViewer,
	OpReadHistory:       model.AccessLevelViewer,
	OpCreateCredential:  model.AccessLevelManager,
	OpUpdateCredential:  model.AccessLevelManager,
	OpDeleteCredential:  model.AccessLevelManager,
	OpListUsers:         model.AccessLevelAdmin,
	OpCreateUser:        model.AccessLevelAdmin,
	OpChangeAccessLevel: model.AccessLevelAdmin,
}

// Authorize decides whether actor may perform op. For OpChangeAccessLevel,
// targetUserID is the user whose level would change; a user can never
// change their own access level, whatever their tier. That guard runs
// before any tier check.
func Authorize(actor *model.User, op Operation, targetUserID string) error {
	if op == OpChangeAccessLevel && targetUserID == actor.ID {
		return ErrPermissionDenied
	}

	required, ok := minLevel[op]
	if !ok {
		return ErrPermissionDenied
	}

	if rank(actor.AccessLevel) < rank(required) {
		return ErrPermissionDenied
	}

	return nil
}
