package services

import (
	"context"
	"errors"

	lumina_errors "lumina-chat/pkg/errors"
	"lumina-chat/pkg/retry"

	"github.com/google/uuid"
)

type ctxKey string

var userIDKey ctxKey = "user_id"

// WithUserContext records a verified user id on the request context. Presence
// of the id is what distinguishes an authenticated request from an anonymous
// one; there is no ambient session state.
func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// HTTPStatus maps domain errors to response status codes. Unrecognized errors
// map to 500 and must not leak detail to the client.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, lumina_errors.ErrInvalidInput),
		errors.Is(err, lumina_errors.ErrEmailTaken),
		errors.Is(err, lumina_errors.ErrUsernameTaken):
		return 400
	case errors.Is(err, lumina_errors.ErrInvalidCredentials),
		errors.Is(err, lumina_errors.ErrMissingToken),
		errors.Is(err, lumina_errors.ErrTokenExpired),
		errors.Is(err, lumina_errors.ErrTokenMalformed),
		errors.Is(err, lumina_errors.ErrUpstreamAuth):
		return 401
	case errors.Is(err, lumina_errors.ErrNotFound):
		return 404
	case errors.Is(err, lumina_errors.ErrAlreadyExists):
		return 409
	case errors.Is(err, lumina_errors.ErrRateLimited),
		errors.Is(err, retry.ErrMaxRetries):
		return 429
	case errors.Is(err, lumina_errors.ErrUpstream):
		return 502
	default:
		return 500
	}
}
