package lumina_errors

import "errors"

// Domain errors. Handlers translate these into status codes and user-facing
// messages; anything not listed here is treated as unexpected and logged.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrTokenExpired       = errors.New("session expired")
	ErrTokenMalformed     = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrRateLimited        = errors.New("rate limited")
	ErrUpstreamAuth       = errors.New("upstream authentication failed")
	ErrUpstream           = errors.New("upstream error")
)
