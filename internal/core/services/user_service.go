package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/utils"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// FindUserByID retrieves a user by their internal id
func (s *userService) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// UpsertTelegramUser creates or refreshes the user bound to a Telegram identity.
func (s *userService) UpsertTelegramUser(ctx context.Context, profile portssvc.TelegramProfile) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByTelegramID(ctx, profile.TelegramID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up telegram user", slog.Int64("telegram_id", profile.TelegramID))
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		// Refresh the profile fields Telegram lets users change.
		if existing.Username != profile.Username || existing.FirstName != profile.FirstName || existing.LastName != profile.LastName {
			existing.Username = profile.Username
			existing.FirstName = profile.FirstName
			existing.LastName = profile.LastName
			existing.LastUpdatedAt = now
			if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
				s.LogError(ctx, err, "Failed to refresh telegram user profile", slog.Int64("user_id", existing.UserID))
				return nil, err
			}
		}
		return existing, nil
	}

	tgID := profile.TelegramID
	user := domain.User{
		TelegramID: &tgID,
		Username:   profile.Username,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	saved, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to create telegram user", slog.Int64("telegram_id", profile.TelegramID))
		return nil, err
	}

	s.LogInfo(ctx, "Telegram user created", slog.Int64("user_id", saved.UserID))
	return saved, nil
}

// CreatePasswordUser registers a username/password account for API clients
// that do not come through Telegram.
func (s *userService) CreatePasswordUser(ctx context.Context, username, password, firstName, lastName string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: &hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	saved, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to create password user", slog.String("username", username))
		return nil, err
	}

	s.LogInfo(ctx, "Password user created", slog.Int64("user_id", saved.UserID))
	return saved, nil
}

// AuthenticateByPassword verifies a username/password pair.
func (s *userService) AuthenticateByPassword(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user or wrong password", apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to look up user for login", slog.String("username", username))
		return nil, err
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, fmt.Errorf("%w: unknown user or wrong password", apperrors.ErrValidation)
	}
	return user, nil
}
