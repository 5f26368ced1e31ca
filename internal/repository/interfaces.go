package repository

import (
	"context"

	"github.com/google/uuid"

	"lumina-chat/internal/domain/message"
	"lumina-chat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (user.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetUserMessages(ctx context.Context, userID uuid.UUID) ([]message.Message, error)
}
