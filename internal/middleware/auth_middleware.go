package middleware

import (
	"errors"
	"net/http"
	"strings"

	"lumina-chat/internal/services"
	"lumina-chat/internal/transport/httpdto"
	lumina_errors "lumina-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and puts the verified user id on
// the request context. Missing, expired and malformed tokens get distinct
// user-facing messages.
func AuthMiddleware(tokens *services.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(lumina_errors.ErrMissingToken.Error()))
			c.Abort()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			if errors.Is(err, lumina_errors.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponseWithAction(lumina_errors.ErrTokenExpired.Error(), "login"))
			} else {
				c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(lumina_errors.ErrTokenMalformed.Error()))
			}
			c.Abort()
			return
		}

		ctx := services.WithUserContext(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
