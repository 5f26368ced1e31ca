package handler

import (
	"net/http"

	"lumina-chat/internal/services"
	"lumina-chat/internal/transport/httpdto"
	lumina_errors "lumina-chat/pkg/errors"
	"lumina-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler proxies prompts to the model and serves conversation history.
type ChatHandler struct {
	service *services.ChatService
	logger  *logger.Logger
}

func NewChatHandler(service *services.ChatService, l *logger.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: l}
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(lumina_errors.ErrMissingToken.Error()))
		return
	}

	var req httpdto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	res, err := h.service.HandleChat(c.Request.Context(), services.ChatInput{
		UserID:       userID,
		Message:      req.Message,
		SystemPrompt: req.SystemPrompt,
		Mode:         req.Mode,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.ChatResponse{
		Message:   res.Reply,
		MessageID: res.MessageID.String(),
	})
}

// Messages handles GET /chat/:userId.
func (h *ChatHandler) Messages(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id"))
		return
	}

	msgs, err := h.service.Messages(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}
