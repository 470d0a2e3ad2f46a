package repositories

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their internal id.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByTelegramID retrieves a user by their Telegram id.
	FindUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)

	// FindUserByUsername retrieves a user by username (password-login path).
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user and returns it with its assigned id.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// UpdateUser persists profile changes for an existing user.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
