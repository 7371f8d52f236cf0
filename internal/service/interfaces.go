package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// --- Service Interfaces ---

// IUserService defines the interface for account-related business logic.
type IUserService interface {
	Register(nickname, password string) (*domain.User, error)
	Login(nickname, password string) (*domain.User, error)
	GetUserByNickname(nickname string) (*domain.User, error)
}

// IHistoryService defines the interface for chat history access.
type IHistoryService interface {
	Recent(ctx context.Context, limit int64) ([]*domain.StoredMessage, error)
	Clear(ctx context.Context) error
}

// --- Repository Interfaces ---

// IUserRepository defines the interface for user persistence. Lookups
// return ErrUserNotFound for a missing account.
type IUserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByNickname(nickname string) (*domain.User, error)
	GetUserByID(id uuid.UUID) (*domain.User, error)
}

// IMessageRepository defines the interface for message persistence.
type IMessageRepository interface {
	SaveMessage(ctx context.Context, message *domain.StoredMessage) error
	RecentMessages(ctx context.Context, limit int64) ([]*domain.StoredMessage, error)
	PurgeMessages(ctx context.Context) error
}
