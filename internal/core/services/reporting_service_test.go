package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo       *MockTransactionRepository
	mockUserRepo      *MockUserRepository
	mockWorkspaceRepo *MockWorkspaceRepository
	service           portssvc.ReportingSvcFacade
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockWorkspaceRepo = new(MockWorkspaceRepository)
	workspaceSvc := services.NewWorkspaceService(s.mockWorkspaceRepo)
	s.service = services.NewReportingService(s.mockTxnRepo, s.mockUserRepo, workspaceSvc)
}

func (s *ReportingServiceTestSuite) expectMember(workspaceID, userID int64) {
	s.mockWorkspaceRepo.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(&domain.Membership{WorkspaceID: workspaceID, UserID: userID, Role: domain.RoleMember, ShareWeight: 1}, nil)
}

func (s *ReportingServiceTestSuite) expectUser(userID int64, username string) {
	s.mockUserRepo.On("FindUserByID", mock.Anything, userID).
		Return(&domain.User{UserID: userID, Username: username}, nil)
}

func (s *ReportingServiceTestSuite) TestWorkspaceBalances_PayerCreditedOthersShares() {
	ctx := context.Background()
	s.expectMember(7, 1)

	// User 1 paid 9.00 EUR, split 3.00 each across users 1, 2, 3. The payer's
	// own share cancels out, leaving 1 at +6.00 and 2, 3 at -3.00 each.
	txns := []domain.Transaction{
		{TransactionID: 10, WorkspaceID: 7, Type: domain.Expense, AmountMinor: 900, Currency: "EUR", CreatedBy: 1},
	}
	splits := map[int64][]domain.TransactionSplit{
		10: {
			{TransactionID: 10, UserID: 1, AmountMinor: 300},
			{TransactionID: 10, UserID: 2, AmountMinor: 300},
			{TransactionID: 10, UserID: 3, AmountMinor: 300},
		},
	}
	s.mockTxnRepo.On("ListExpenseSplitsByWorkspace", mock.Anything, int64(7)).Return(txns, splits, nil)
	s.expectUser(1, "alice")
	s.expectUser(2, "bob")
	s.expectUser(3, "carol")

	resp, err := s.service.WorkspaceBalances(ctx, 1, 7)

	s.Require().NoError(err)
	entries := resp.Balances["EUR"]
	s.Require().Len(entries, 3)
	s.Equal(int64(600), entries[0].AmountMinor)
	s.Equal(int64(-300), entries[1].AmountMinor)
	s.Equal(int64(-300), entries[2].AmountMinor)

	transfers := resp.Transfers["EUR"]
	s.Require().Len(transfers, 2)
	s.Equal(int64(2), transfers[0].FromUserID)
	s.Equal(int64(1), transfers[0].ToUserID)
	s.Equal("3.00 EUR", transfers[0].Amount)
	s.Equal(int64(3), transfers[1].FromUserID)

	s.Contains(resp.Report, "Balances (EUR):")
	s.Contains(resp.Report, "@bob pays @alice 3.00 EUR")
}

func (s *ReportingServiceTestSuite) TestWorkspaceBalances_SettledWorkspace() {
	ctx := context.Background()
	s.expectMember(7, 1)

	// Two mirror-image expenses cancel out exactly.
	txns := []domain.Transaction{
		{TransactionID: 10, WorkspaceID: 7, Type: domain.Expense, AmountMinor: 400, Currency: "EUR", CreatedBy: 1},
		{TransactionID: 11, WorkspaceID: 7, Type: domain.Expense, AmountMinor: 400, Currency: "EUR", CreatedBy: 2},
	}
	splits := map[int64][]domain.TransactionSplit{
		10: {{TransactionID: 10, UserID: 1, AmountMinor: 200}, {TransactionID: 10, UserID: 2, AmountMinor: 200}},
		11: {{TransactionID: 11, UserID: 1, AmountMinor: 200}, {TransactionID: 11, UserID: 2, AmountMinor: 200}},
	}
	s.mockTxnRepo.On("ListExpenseSplitsByWorkspace", mock.Anything, int64(7)).Return(txns, splits, nil)
	s.expectUser(1, "alice")
	s.expectUser(2, "bob")

	resp, err := s.service.WorkspaceBalances(ctx, 1, 7)

	s.Require().NoError(err)
	s.Empty(resp.Transfers["EUR"])
	s.Contains(resp.Report, "All settled up.")
}

func (s *ReportingServiceTestSuite) TestWorkspaceBalances_NonMemberForbidden() {
	ctx := context.Background()
	s.mockWorkspaceRepo.On("FindMembership", mock.Anything, int64(7), int64(99)).
		Return(nil, apperrors.ErrNotFound)

	_, err := s.service.WorkspaceBalances(ctx, 99, 7)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockTxnRepo.AssertNotCalled(s.T(), "ListExpenseSplitsByWorkspace", mock.Anything, mock.Anything)
}

func (s *ReportingServiceTestSuite) TestMonthlyExpenseReport_WindowAndRows() {
	ctx := context.Background()
	s.expectMember(7, 1)

	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	wantFrom := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	totals := []portsrepo.CategoryTotal{
		{Category: "groceries", Currency: "EUR", TotalMinor: 12345},
		{Category: "uncategorized", Currency: "EUR", TotalMinor: 500},
	}
	s.mockTxnRepo.On("SumExpensesByCategory", mock.Anything, int64(7), wantFrom, wantTo).
		Return(totals, nil)

	resp, err := s.service.MonthlyExpenseReport(ctx, 1, 7, now)

	s.Require().NoError(err)
	s.Require().Len(resp.Rows, 2)
	s.Equal("123.45 EUR", resp.Rows[0].Total)
	s.Contains(resp.Report, "Expenses for March 2024:")
	s.Contains(resp.Report, "groceries: 123.45 EUR")
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestMonthlyExpenseReport_EmptyMonth() {
	ctx := context.Background()
	s.expectMember(7, 1)
	s.mockTxnRepo.On("SumExpensesByCategory", mock.Anything, int64(7), mock.Anything, mock.Anything).
		Return([]portsrepo.CategoryTotal{}, nil)

	resp, err := s.service.MonthlyExpenseReport(ctx, 1, 7, time.Now())

	s.Require().NoError(err)
	s.Empty(resp.Rows)
	s.Contains(resp.Report, "nothing recorded")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
