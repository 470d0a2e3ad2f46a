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
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo       *MockTransactionRepository
	mockWorkspaceRepo *MockWorkspaceRepository
	mockCategoryRepo  *MockCategoryRepository
	service           portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockWorkspaceRepo = new(MockWorkspaceRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	workspaceSvc := services.NewWorkspaceService(s.mockWorkspaceRepo)
	s.service = services.NewTransactionService(s.mockTxnRepo, s.mockWorkspaceRepo, s.mockCategoryRepo, workspaceSvc)
}

func (s *TransactionServiceTestSuite) expectMember(workspaceID, userID int64) {
	s.mockWorkspaceRepo.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(&domain.Membership{WorkspaceID: workspaceID, UserID: userID, Role: domain.RoleMember, ShareWeight: 1}, nil).Once()
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ExpenseSplitsByWeight() {
	ctx := context.Background()
	s.expectMember(7, 1)
	s.mockWorkspaceRepo.On("ListMemberships", mock.Anything, int64(7)).Return([]domain.Membership{
		{WorkspaceID: 7, UserID: 1, ShareWeight: 2},
		{WorkspaceID: 7, UserID: 2, ShareWeight: 1},
		{WorkspaceID: 7, UserID: 3, ShareWeight: 1},
	}, nil).Once()
	s.mockTxnRepo.On("SaveTransactionWithSplits", mock.Anything,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.AmountMinor == 1000 && txn.Currency == "USD" && txn.Type == domain.Expense
		}),
		mock.MatchedBy(func(splits []domain.TransactionSplit) bool {
			if len(splits) != 3 {
				return false
			}
			return splits[0].AmountMinor == 500 && splits[1].AmountMinor == 250 && splits[2].AmountMinor == 250
		}),
	).Return(&domain.Transaction{TransactionID: 42, AmountMinor: 1000, Currency: "USD", Type: domain.Expense}, nil).Once()

	txn, splits, err := s.service.CreateTransaction(ctx, 1, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "10.00", Currency: "usd",
	})

	s.Require().NoError(err)
	s.Equal(int64(42), txn.TransactionID)
	s.Len(splits, 3)
	var sum int64
	for _, sp := range splits {
		sum += sp.AmountMinor
		s.Equal(int64(42), sp.TransactionID)
	}
	s.Equal(int64(1000), sum)
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockWorkspaceRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_IncomeGoesToActor() {
	ctx := context.Background()
	s.expectMember(7, 2)
	s.mockTxnRepo.On("SaveTransactionWithSplits", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(splits []domain.TransactionSplit) bool {
			return len(splits) == 1 && splits[0].UserID == 2 && splits[0].AmountMinor == 2550
		}),
	).Return(&domain.Transaction{TransactionID: 43, Type: domain.Income, AmountMinor: 2550, Currency: "EUR"}, nil).Once()

	_, splits, err := s.service.CreateTransaction(ctx, 2, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "income", Amount: "25,50", Currency: "EUR",
	})

	s.Require().NoError(err)
	s.Len(splits, 1)
	// Income never fans out over memberships.
	s.mockWorkspaceRepo.AssertNotCalled(s.T(), "ListMemberships", mock.Anything, mock.Anything)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_NonMemberForbidden() {
	ctx := context.Background()
	s.mockWorkspaceRepo.On("FindMembership", mock.Anything, int64(7), int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := s.service.CreateTransaction(ctx, 99, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "10.00", Currency: "USD",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransactionWithSplits", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_InvalidAmount() {
	ctx := context.Background()
	s.expectMember(7, 1)

	_, _, err := s.service.CreateTransaction(ctx, 1, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "ten bucks", Currency: "USD",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ZeroAmountRejected() {
	ctx := context.Background()
	s.expectMember(7, 1)

	_, _, err := s.service.CreateTransaction(ctx, 1, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "0.00", Currency: "USD",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_CategoryFromOtherWorkspace() {
	ctx := context.Background()
	s.expectMember(7, 1)
	categoryID := int64(11)
	s.mockCategoryRepo.On("FindCategoryByID", mock.Anything, categoryID).
		Return(&domain.Category{CategoryID: categoryID, WorkspaceID: 8}, nil).Once()

	_, _, err := s.service.CreateTransaction(ctx, 1, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "10.00", Currency: "USD", CategoryID: &categoryID,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_NoMembersFallsBackToPayer() {
	ctx := context.Background()
	s.expectMember(7, 1)
	s.mockWorkspaceRepo.On("ListMemberships", mock.Anything, int64(7)).Return([]domain.Membership{}, nil).Once()
	s.mockTxnRepo.On("SaveTransactionWithSplits", mock.Anything, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(splits []domain.TransactionSplit) bool {
			return len(splits) == 1 && splits[0].UserID == 1 && splits[0].AmountMinor == 1000
		}),
	).Return(&domain.Transaction{TransactionID: 44}, nil).Once()

	_, splits, err := s.service.CreateTransaction(ctx, 1, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "10.00", Currency: "USD",
	})

	s.Require().NoError(err)
	s.Len(splits, 1)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ZeroDecimalCurrency() {
	ctx := context.Background()
	s.expectMember(7, 1)
	s.mockWorkspaceRepo.On("ListMemberships", mock.Anything, int64(7)).Return([]domain.Membership{
		{WorkspaceID: 7, UserID: 1, ShareWeight: 1},
		{WorkspaceID: 7, UserID: 2, ShareWeight: 1},
	}, nil).Once()
	s.mockTxnRepo.On("SaveTransactionWithSplits", mock.Anything,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			// 1000 yen stays 1000 minor units at scale 0.
			return txn.AmountMinor == 1000 && txn.Currency == "JPY"
		}),
		mock.AnythingOfType("[]domain.TransactionSplit"),
	).Return(&domain.Transaction{TransactionID: 45, AmountMinor: 1000, Currency: "JPY"}, nil).Once()

	_, _, err := s.service.CreateTransaction(ctx, 1, 7, dto.CreateTransactionRequest{
		WalletID: 5, Type: "expense", Amount: "1000", Currency: "jpy",
	})

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()
	s.expectMember(7, 1)
	s.mockTxnRepo.On("ListTransactionsByWorkspace", mock.Anything, int64(7), 20, 0).
		Return([]domain.Transaction{}, nil).Once()

	_, err := s.service.ListTransactions(ctx, 1, 7, 500, -3)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
