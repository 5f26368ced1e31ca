package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lumina-chat/internal/domain/message"
	"lumina-chat/internal/genai"
	"lumina-chat/internal/repository"
	lumina_errors "lumina-chat/pkg/errors"
	"lumina-chat/pkg/logger"
	"lumina-chat/pkg/retry"

	"github.com/google/uuid"
)

type ChatService struct {
	messageRepo repository.MessageRepository
	model       genai.Client
	tags        *TagPicker
	maxAttempts int
	retryDelay  time.Duration
	logger      *logger.Logger
}

func NewChatService(messageRepo repository.MessageRepository, model genai.Client, tags *TagPicker, maxAttempts int, retryDelay time.Duration, l *logger.Logger) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		model:       model,
		tags:        tags,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      l,
	}
}

type ChatInput struct {
	UserID       uuid.UUID
	Message      string
	SystemPrompt string
	Mode         string
}

type ChatResult struct {
	Reply     string
	MessageID uuid.UUID
}

// HandleChat forwards one prompt to the model and records both sides of the
// exchange. Rate-limit responses from the model are retried with a fixed
// delay before surfacing.
func (s *ChatService) HandleChat(ctx context.Context, in ChatInput) (ChatResult, error) {
	if in.Message == "" || in.SystemPrompt == "" || in.Mode == "" || in.UserID == uuid.Nil {
		return ChatResult{}, lumina_errors.ErrInvalidInput
	}
	if !message.ValidMode(in.Mode) {
		return ChatResult{}, fmt.Errorf("%w: unknown mode %q", lumina_errors.ErrInvalidInput, in.Mode)
	}

	prompt := fmt.Sprintf("%s\n\nUser: %s", in.SystemPrompt, in.Message)

	reply, err := retry.Do(ctx, s.maxAttempts, s.retryDelay, isRateLimit, func(ctx context.Context) (string, error) {
		return s.model.Generate(ctx, prompt)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorfCtx(ctx, "model call failed: %s", err)
		}
		return ChatResult{}, err
	}

	userTurn := &message.Message{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Text:      in.Message,
		IsUser:    true,
		Mode:      in.Mode,
		Tags:      []string{message.UserTag},
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, userTurn); err != nil {
		return ChatResult{}, err
	}

	modelTurn := &message.Message{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Text:      reply,
		IsUser:    false,
		Mode:      in.Mode,
		Tags:      s.tags.Pick(),
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Create(ctx, modelTurn); err != nil {
		return ChatResult{}, err
	}

	return ChatResult{
		Reply:     reply,
		MessageID: modelTurn.ID,
	}, nil
}

// Messages returns all turns for a user, oldest first.
func (s *ChatService) Messages(ctx context.Context, userID uuid.UUID) ([]message.Message, error) {
	return s.messageRepo.GetUserMessages(ctx, userID)
}

func isRateLimit(err error) bool {
	return errors.Is(err, lumina_errors.ErrRateLimited)
}
