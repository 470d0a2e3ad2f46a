package services

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// TelegramProfile is the identity payload extracted from validated WebApp
// init data.
type TelegramProfile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	// FindUserByID retrieves a user by their internal id.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// UpsertTelegramUser creates or refreshes the user bound to a Telegram
	// identity and returns it.
	UpsertTelegramUser(ctx context.Context, profile TelegramProfile) (*domain.User, error)

	// CreatePasswordUser registers a username/password account.
	CreatePasswordUser(ctx context.Context, username, password, firstName, lastName string) (*domain.User, error)

	// AuthenticateByPassword verifies a username/password pair.
	AuthenticateByPassword(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthSvcFacade exchanges credentials for access tokens.
type AuthSvcFacade interface {
	// LoginWithTelegram validates Telegram WebApp init data and returns a JWT
	// for the (possibly newly created) user.
	LoginWithTelegram(ctx context.Context, initData string) (string, *domain.User, error)

	// LoginWithPassword returns a JWT for a password user.
	LoginWithPassword(ctx context.Context, username, password string) (string, *domain.User, error)

	// Register creates a password user and returns a JWT for it.
	Register(ctx context.Context, username, password, firstName, lastName string) (string, *domain.User, error)
}
