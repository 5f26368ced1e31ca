package services

import (
	"errors"
	"time"

	"lumina-chat/config"
	lumina_errors "lumina-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer creates and verifies the bearer tokens that stand in for
// sessions. Tokens are HS256 JWTs carrying the user id and an expiry; nothing
// is persisted, so expiry is the only termination mechanism.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type AccessClaims struct {
	jwt.RegisteredClaims
}

// Issue signs a token for userID expiring ttl from now. Returns the token and
// its lifetime in seconds.
func (i *TokenIssuer) Issue(userID uuid.UUID) (string, int64, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(i.ttl.Seconds()), nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Expired and malformed tokens fail with distinct errors so callers can tell
// "log in again" apart from "invalid token".
func (i *TokenIssuer) Verify(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, lumina_errors.ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, lumina_errors.ErrTokenMalformed
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, lumina_errors.ErrTokenExpired
		}
		return uuid.Nil, lumina_errors.ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, lumina_errors.ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, lumina_errors.ErrTokenMalformed
	}
	return userID, nil
}
