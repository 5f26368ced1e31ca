package middleware

import (
	"net/http"

	"lumina-chat/internal/transport/httpdto"
	"lumina-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors attached to the gin context that no handler
// translated. The detail is logged; the client only sees a generic message.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.ErrorfCtx(c.Request.Context(), "unhandled request error: %s", err)
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("something went wrong"))
		}
	}
}
