// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"lumina-chat/internal/services"
	"lumina-chat/internal/transport/httpdto"
	lumina_errors "lumina-chat/pkg/errors"
	"lumina-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and the /me endpoint.
type AuthHandler struct {
	service *services.AuthService
	logger  *logger.Logger
}

func NewAuthHandler(service *services.AuthService, l *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: l}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	res, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.AuthResponse{
		Message:   "user registered successfully",
		User:      res.User,
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.AuthResponse{
		Message:   "logged in successfully",
		User:      res.User,
		Token:     res.Token,
		ExpiresIn: res.ExpiresIn,
	})
}

// Me handles GET /me. AuthMiddleware has already verified the token.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(lumina_errors.ErrMissingToken.Error()))
		return
	}

	profile, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, lumina_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("user not found"))
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.MeResponse{User: profile})
}

func (h *AuthHandler) writeError(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

// writeError translates a domain error to status code plus body. Duplicate
// identities carry a "login" action hint; unrecognized errors are logged and
// answered with a generic message.
func writeError(c *gin.Context, l *logger.Logger, err error) {
	status := services.HTTPStatus(err)

	switch {
	case errors.Is(err, lumina_errors.ErrEmailTaken):
		c.JSON(status, httpdto.NewErrorResponseWithAction(lumina_errors.ErrEmailTaken.Error(), "login"))
	case errors.Is(err, lumina_errors.ErrUsernameTaken):
		c.JSON(status, httpdto.NewErrorResponseWithAction(lumina_errors.ErrUsernameTaken.Error(), "login"))
	case status == http.StatusInternalServerError:
		if l != nil {
			l.ErrorfCtx(c.Request.Context(), "internal error: %s", err)
		}
		c.JSON(status, httpdto.NewErrorResponse("something went wrong"))
	default:
		c.JSON(status, httpdto.NewErrorResponse(userFacingMessage(err)))
	}
}

// userFacingMessage strips wrapping detail from upstream errors so transport
// internals never reach the response body.
func userFacingMessage(err error) string {
	switch {
	case errors.Is(err, lumina_errors.ErrInvalidInput):
		return lumina_errors.ErrInvalidInput.Error()
	case errors.Is(err, lumina_errors.ErrRateLimited):
		return "request limit exceeded, try again later"
	case errors.Is(err, lumina_errors.ErrUpstreamAuth):
		return "model API key rejected"
	case errors.Is(err, lumina_errors.ErrUpstream):
		return "failed to process the request, try again"
	default:
		return err.Error()
	}
}
