package middleware

import (
	"net/http"
	"strconv"

	"lumina-chat/internal/redis"
	"lumina-chat/internal/services"
	"lumina-chat/internal/transport/httpdto"
	"lumina-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthRateLimitMiddleware limits auth attempts per client IP. Applied to the
// register and login routes before any credential work happens.
func AuthRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not take auth down with it.
			if l := logger.GetGlobalLogger(); l != nil {
				l.Warnf("auth rate limit check failed: %s", err)
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("too many attempts, try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// ChatRateLimitMiddleware limits chat requests per user. Must run after
// AuthMiddleware so the user id is on the context.
func ChatRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := services.UserIDFromContext(c.Request.Context())
		if !ok {
			// No user context, auth middleware will reject anyway.
			c.Next()
			return
		}

		result, err := limiter.AllowChat(c.Request.Context(), userID.String())
		if err != nil {
			if l := logger.GetGlobalLogger(); l != nil {
				l.Warnf("chat rate limit check failed: %s", err)
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("too many chat requests, try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
