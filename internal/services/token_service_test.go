package services

import (
	"errors"
	"testing"
	"time"

	"lumina-chat/config"
	lumina_errors "lumina-chat/pkg/errors"

	"github.com/google/uuid"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer(&config.Config{
		JWTSecret:    "super-secret",
		JWTExpiryMin: 60,
	})
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	userID := uuid.New()

	tok, expiresIn, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn mismatch: got %d want 3600", expiresIn)
	}

	got, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != userID {
		t.Fatalf("userID mismatch: got %s want %s", got, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := &TokenIssuer{secret: []byte("secret"), ttl: -1 * time.Second}

	tok, _, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = issuer.Verify(tok)
	if !errors.Is(err, lumina_errors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecretIsMalformed(t *testing.T) {
	t.Parallel()

	tok, _, err := newTestIssuer().Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := &TokenIssuer{secret: []byte("different"), ttl: time.Hour}
	_, err = other.Verify(tok)
	if !errors.Is(err, lumina_errors.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := newTestIssuer().Verify("not.a.jwt")
	if !errors.Is(err, lumina_errors.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_Empty(t *testing.T) {
	t.Parallel()

	_, err := newTestIssuer().Verify("")
	if !errors.Is(err, lumina_errors.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}
