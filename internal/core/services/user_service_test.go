package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/core/services"
	"github.com/prosperahq/prospera_wallet_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo)
}

func (s *UserServiceTestSuite) TestUpsertTelegramUser_CreatesOnFirstContact() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByTelegramID", mock.Anything, int64(555)).
		Return(nil, apperrors.ErrNotFound)
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.TelegramID != nil && *u.TelegramID == 555 && u.Username == "alice"
	})).Return(&domain.User{UserID: 1, Username: "alice"}, nil)

	user, err := s.service.UpsertTelegramUser(ctx, portssvc.TelegramProfile{
		TelegramID: 555, Username: "alice", FirstName: "Alice",
	})

	s.Require().NoError(err)
	s.Equal(int64(1), user.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestUpsertTelegramUser_RefreshesChangedProfile() {
	ctx := context.Background()
	tgID := int64(555)
	existing := &domain.User{UserID: 1, TelegramID: &tgID, Username: "old_handle"}
	s.mockUserRepo.On("FindUserByTelegramID", mock.Anything, tgID).Return(existing, nil)
	s.mockUserRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == 1 && u.Username == "new_handle"
	})).Return(nil)

	user, err := s.service.UpsertTelegramUser(ctx, portssvc.TelegramProfile{
		TelegramID: tgID, Username: "new_handle",
	})

	s.Require().NoError(err)
	s.Equal("new_handle", user.Username)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestUpsertTelegramUser_NoWriteWhenUnchanged() {
	ctx := context.Background()
	tgID := int64(555)
	existing := &domain.User{UserID: 1, TelegramID: &tgID, Username: "alice", FirstName: "Alice"}
	s.mockUserRepo.On("FindUserByTelegramID", mock.Anything, tgID).Return(existing, nil)

	_, err := s.service.UpsertTelegramUser(ctx, portssvc.TelegramProfile{
		TelegramID: tgID, Username: "alice", FirstName: "Alice",
	})

	s.Require().NoError(err)
	s.mockUserRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreatePasswordUser_HashesPassword() {
	ctx := context.Background()
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "bob" &&
			u.PasswordHash != nil &&
			utils.CheckPasswordHash("hunter2hunter2", *u.PasswordHash)
	})).Return(&domain.User{UserID: 2, Username: "bob"}, nil)

	user, err := s.service.CreatePasswordUser(ctx, "bob", "hunter2hunter2", "Bob", "")

	s.Require().NoError(err)
	s.Equal(int64(2), user.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreatePasswordUser_ShortPasswordRejected() {
	ctx := context.Background()

	_, err := s.service.CreatePasswordUser(ctx, "bob", "short", "", "")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreatePasswordUser_DuplicateUsername() {
	ctx := context.Background()
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate)

	_, err := s.service.CreatePasswordUser(ctx, "bob", "hunter2hunter2", "", "")

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticateByPassword_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse-battery")
	s.Require().NoError(err)
	s.mockUserRepo.On("FindUserByUsername", mock.Anything, "bob").
		Return(&domain.User{UserID: 2, Username: "bob", PasswordHash: &hash}, nil)

	_, err = s.service.AuthenticateByPassword(ctx, "bob", "wrong")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *UserServiceTestSuite) TestAuthenticateByPassword_TelegramOnlyUserRejected() {
	ctx := context.Background()
	tgID := int64(555)
	s.mockUserRepo.On("FindUserByUsername", mock.Anything, "alice").
		Return(&domain.User{UserID: 1, Username: "alice", TelegramID: &tgID}, nil)

	_, err := s.service.AuthenticateByPassword(ctx, "alice", "anything")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
