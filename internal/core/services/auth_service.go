package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/utils"
)

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	userService portssvc.UserSvcFacade
	botToken    string
	jwtSecret   string
	jwtExpiry   time.Duration
	jwtIssuer   string
}

// NewAuthService creates a new auth service with the provided dependencies
func NewAuthService(userService portssvc.UserSvcFacade, botToken, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userService: userService,
		botToken:    botToken,
		jwtSecret:   jwtSecret,
		jwtExpiry:   jwtExpiry,
		jwtIssuer:   jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// LoginWithTelegram validates WebApp init data, upserts the user and issues a JWT.
func (s *authService) LoginWithTelegram(ctx context.Context, initData string) (string, *domain.User, error) {
	values, err := utils.ValidateTelegramInitData(initData, s.botToken)
	if err != nil {
		s.LogDebug(ctx, "Rejected telegram init data", slog.String("error", err.Error()))
		return "", nil, err
	}
	tgUser, err := utils.ExtractTelegramUser(values)
	if err != nil {
		return "", nil, err
	}

	user, err := s.userService.UpsertTelegramUser(ctx, portssvc.TelegramProfile{
		TelegramID: tgUser.ID,
		Username:   tgUser.Username,
		FirstName:  tgUser.FirstName,
		LastName:   tgUser.LastName,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.UserID))
		return "", nil, err
	}
	return token, user, nil
}

// LoginWithPassword verifies credentials and issues a JWT.
func (s *authService) LoginWithPassword(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.userService.AuthenticateByPassword(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.UserID))
		return "", nil, err
	}
	return token, user, nil
}

// Register creates a password user and logs it straight in.
func (s *authService) Register(ctx context.Context, username, password, firstName, lastName string) (string, *domain.User, error) {
	user, err := s.userService.CreatePasswordUser(ctx, username, password, firstName, lastName)
	if err != nil {
		return "", nil, err
	}
	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.UserID))
		return "", nil, err
	}
	return token, user, nil
}
