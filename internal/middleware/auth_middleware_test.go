package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumina-chat/config"
	"lumina-chat/internal/services"
	"lumina-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(tokens *services.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		userID, ok := services.UserIDFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user on context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httpdto.ErrorResponse {
	t.Helper()
	var body httpdto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func testIssuer(expiryMin int) *services.TokenIssuer {
	return services.NewTokenIssuer(&config.Config{JWTSecret: "test-secret", JWTExpiryMin: expiryMin})
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r := newProtectedRouter(testIssuer(60))

	for _, header := range []string{"", "Bearer", "Basic dXNlcjpwYXNz"} {
		w := doRequest(r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "missing token", decodeError(t, w).Error)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := testIssuer(60)
	r := newProtectedRouter(issuer)

	expired := testIssuer(-1)
	token, _, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	// Same secret, expiry in the past.
	time.Sleep(10 * time.Millisecond)
	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, "session expired", body.Error)
	assert.Equal(t, "login", body.Action)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	r := newProtectedRouter(testIssuer(60))

	w := doRequest(r, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decodeError(t, w).Error)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := newProtectedRouter(testIssuer(60))

	other := services.NewTokenIssuer(&config.Config{JWTSecret: "other-secret", JWTExpiryMin: 60})
	token, _, err := other.Issue(uuid.New())
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decodeError(t, w).Error)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	issuer := testIssuer(60)
	r := newProtectedRouter(issuer)

	userID := uuid.New()
	token, _, err := issuer.Issue(userID)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["userId"])
}
