// internal/lobby/errors.go
//
// Error kinds returned by lobby operations. Every operation wraps one of
// these sentinels, so the HTTP boundary can map kinds to status codes with
// errors.Is without parsing messages.

package lobby

import "errors"

var (
	// ErrValidation marks malformed or empty input.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized marks a missing administrator capability.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks an unknown lobby code or player id.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation invalid for the lobby's current state:
	// full, already started, not yet started, too few players, duplicate name.
	ErrConflict = errors.New("state conflict")
	// ErrInternal marks unexpected failures, e.g. a broken random source.
	ErrInternal = errors.New("internal error")
)
