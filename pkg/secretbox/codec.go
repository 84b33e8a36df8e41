package secretbox

import (
	"encoding/base64"
	"fmt"
)

// Codec is the reversible encode/decode contract for stored secrets.
// Decode(Encode(x)) == x for all x, including the empty string: the empty
// secret encodes to the empty stored value and back.
type Codec interface {
	// Encode transforms a plaintext secret into its stored form. scope
	// binds the value to its owning row.
	Encode(scope, plain string) (string, error)

	// Decode recovers the plaintext from a stored value. Malformed input
	// yields a *DecodeError, never a panic, so one corrupt row cannot
	// abort a list operation.
	Decode(scope, stored string) (string, error)
}

// DecodeError reports that a stored secret could not be decoded. It is
// recoverable at the row level; callers substitute a placeholder.
type DecodeError struct {
	Scope string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("secret decode failed for scope %q: %v", e.Scope, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Base64Codec is the legacy reversible encoding used by the original
// spreadsheet-backed store. It is an encoding, not encryption.
type Base64Codec struct{}

func (Base64Codec) Encode(scope, plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	return base64.StdEncoding.EncodeToString([]byte(plain)), nil
}

func (Base64Codec) Decode(scope, stored string) (string, error) {
	if stored == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", &DecodeError{Scope: scope, Err: err}
	}
	return string(raw), nil
}
