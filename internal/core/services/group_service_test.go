package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/core/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockGroupRepository
	mockUserRepo  *MockUserRepository
	mockAuditRepo *MockAuditRepository
	service       portssvc.GroupSvcFacade
}

func (s *GroupServiceTestSuite) SetupTest() {
	s.mockGroupRepo = new(MockGroupRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockAuditRepo = new(MockAuditRepository)
	s.service = services.NewGroupService(s.mockGroupRepo, s.mockUserRepo, s.mockAuditRepo)
}

func (s *GroupServiceTestSuite) expectGroupMember(groupID, userID int64) {
	s.mockGroupRepo.On("FindGroupMembership", mock.Anything, groupID, userID).
		Return(&domain.GroupMembership{GroupID: groupID, UserID: userID, Role: domain.GroupMember}, nil)
}

func (s *GroupServiceTestSuite) TestCreateGroup_DeduplicatesAndOrdersMembers() {
	ctx := context.Background()
	for _, id := range []int64{2, 3, 9} {
		s.mockUserRepo.On("FindUserByID", mock.Anything, id).Return(&domain.User{UserID: id}, nil).Once()
	}
	s.mockGroupRepo.On("SaveGroupWithMembers", mock.Anything, mock.AnythingOfType("domain.Group"),
		mock.MatchedBy(func(members []domain.GroupMembership) bool {
			if len(members) != 3 {
				return false
			}
			orderOK := members[0].UserID == 2 && members[1].UserID == 3 && members[2].UserID == 9
			rolesOK := members[0].Role == domain.GroupMember && members[2].Role == domain.GroupAdmin
			return orderOK && rolesOK
		}),
	).Return(&domain.Group{GroupID: 5, Name: "trip", CreatedBy: 9}, nil).Once()

	group, err := s.service.CreateGroup(ctx, 9, "trip", []int64{3, 2, 9, 3})

	s.Require().NoError(err)
	s.Equal(int64(5), group.GroupID)
	s.mockGroupRepo.AssertExpectations(s.T())
}

func (s *GroupServiceTestSuite) TestCreateGroup_UnknownMemberRejected() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByID", mock.Anything, int64(1)).Return(&domain.User{UserID: 1}, nil).Once()
	s.mockUserRepo.On("FindUserByID", mock.Anything, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateGroup(ctx, 1, "trip", []int64{404})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockGroupRepo.AssertNotCalled(s.T(), "SaveGroupWithMembers", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GroupServiceTestSuite) TestCreateExpense_EqualSplitLeftoverToFirstMember() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.mockGroupRepo.On("ListGroupMemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2, 3}, nil).Once()
	s.mockGroupRepo.On("SaveExpenseWithSplits", mock.Anything, mock.AnythingOfType("domain.GroupExpense"),
		mock.MatchedBy(func(splits []domain.GroupExpenseSplit) bool {
			if len(splits) != 3 {
				return false
			}
			// 100.00 / 3 = 33.33 each; member 1 absorbs the leftover cent.
			return splits[0].AmountOwed.Equal(decimal.RequireFromString("33.34")) &&
				splits[1].AmountOwed.Equal(decimal.RequireFromString("33.33")) &&
				splits[2].AmountOwed.Equal(decimal.RequireFromString("33.33"))
		}),
	).Return(&domain.GroupExpense{ExpenseID: 77, GroupID: 5, PaidBy: 1}, nil).Once()
	s.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.MatchedBy(func(log domain.AuditLog) bool {
		return log.Action == domain.AuditExpenseCreated && log.EntityID == 77
	})).Return(nil).Once()

	expense, splits, err := s.service.CreateExpense(ctx, 1, 5, dto.CreateGroupExpenseRequest{
		PaidBy: 1, Amount: "100.00", Currency: "USD", Description: "dinner",
	})

	s.Require().NoError(err)
	s.Equal(int64(77), expense.ExpenseID)
	sum := decimal.Zero
	for _, sp := range splits {
		sum = sum.Add(sp.AmountOwed)
		s.Equal(int64(77), sp.ExpenseID)
	}
	s.True(sum.Equal(decimal.RequireFromString("100.00")))
	s.mockGroupRepo.AssertExpectations(s.T())
	s.mockAuditRepo.AssertExpectations(s.T())
}

func (s *GroupServiceTestSuite) TestCreateExpense_SubCentTotalNeverGoesNegative() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.mockGroupRepo.On("ListGroupMemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2, 3, 4}, nil).Once()
	s.mockGroupRepo.On("SaveExpenseWithSplits", mock.Anything, mock.AnythingOfType("domain.GroupExpense"),
		mock.MatchedBy(func(splits []domain.GroupExpenseSplit) bool {
			if len(splits) != 4 {
				return false
			}
			// 0.02 / 4 floors to 0.00 each; member 1 carries the whole total.
			for _, sp := range splits {
				if sp.AmountOwed.IsNegative() {
					return false
				}
			}
			return splits[0].AmountOwed.Equal(decimal.RequireFromString("0.02")) &&
				splits[1].AmountOwed.IsZero() &&
				splits[2].AmountOwed.IsZero() &&
				splits[3].AmountOwed.IsZero()
		}),
	).Return(&domain.GroupExpense{ExpenseID: 78, GroupID: 5, PaidBy: 1}, nil).Once()
	s.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	_, splits, err := s.service.CreateExpense(ctx, 1, 5, dto.CreateGroupExpenseRequest{
		PaidBy: 1, Amount: "0.02", Currency: "USD", Description: "rounding dust",
	})

	s.Require().NoError(err)
	sum := decimal.Zero
	for _, sp := range splits {
		sum = sum.Add(sp.AmountOwed)
	}
	s.True(sum.Equal(decimal.RequireFromString("0.02")))
	s.mockGroupRepo.AssertExpectations(s.T())
}

func (s *GroupServiceTestSuite) TestCreateExpense_ExplicitSplitsMustSumToTotal() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.expectGroupMember(5, 2)
	s.mockGroupRepo.On("ListGroupMemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2}, nil).Once()

	_, _, err := s.service.CreateExpense(ctx, 1, 5, dto.CreateGroupExpenseRequest{
		PaidBy: 1, Amount: "50.00", Currency: "USD",
		Splits: []dto.GroupSplitInput{
			{UserID: 1, Amount: "20.00"},
			{UserID: 2, Amount: "20.00"},
		},
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockGroupRepo.AssertNotCalled(s.T(), "SaveExpenseWithSplits", mock.Anything, mock.Anything, mock.Anything)
}

func (s *GroupServiceTestSuite) TestCreateExpense_PayerMustBeMember() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.mockGroupRepo.On("FindGroupMembership", mock.Anything, int64(5), int64(42)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := s.service.CreateExpense(ctx, 1, 5, dto.CreateGroupExpenseRequest{
		PaidBy: 42, Amount: "10.00", Currency: "USD",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *GroupServiceTestSuite) TestCreateExpense_NonMemberForbidden() {
	ctx := context.Background()
	s.mockGroupRepo.On("FindGroupMembership", mock.Anything, int64(5), int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := s.service.CreateExpense(ctx, 99, 5, dto.CreateGroupExpenseRequest{
		PaidBy: 99, Amount: "10.00", Currency: "USD",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *GroupServiceTestSuite) TestComputeBalances_PaidMinusOwed() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.mockGroupRepo.On("ListGroupMemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2, 3}, nil).Once()
	s.mockGroupRepo.On("SumPaidByUser", mock.Anything, int64(5)).Return(map[int64]decimal.Decimal{
		1: decimal.RequireFromString("90.00"),
	}, nil).Once()
	s.mockGroupRepo.On("SumOwedByUser", mock.Anything, int64(5)).Return(map[int64]decimal.Decimal{
		1: decimal.RequireFromString("30.00"),
		2: decimal.RequireFromString("30.00"),
		3: decimal.RequireFromString("30.00"),
	}, nil).Once()

	balances, err := s.service.ComputeBalances(ctx, 1, 5)

	s.Require().NoError(err)
	s.True(balances[1].Equal(decimal.RequireFromString("60.00")))
	s.True(balances[2].Equal(decimal.RequireFromString("-30.00")))
	s.True(balances[3].Equal(decimal.RequireFromString("-30.00")))
}

func (s *GroupServiceTestSuite) TestCreateSettlements_PersistsNettedPlan() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.mockGroupRepo.On("ListGroupMemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2, 3}, nil).Once()
	s.mockGroupRepo.On("SumPaidByUser", mock.Anything, int64(5)).Return(map[int64]decimal.Decimal{
		1: decimal.RequireFromString("90.00"),
	}, nil).Once()
	s.mockGroupRepo.On("SumOwedByUser", mock.Anything, int64(5)).Return(map[int64]decimal.Decimal{
		1: decimal.RequireFromString("30.00"),
		2: decimal.RequireFromString("30.00"),
		3: decimal.RequireFromString("30.00"),
	}, nil).Once()
	s.mockGroupRepo.On("SaveSettlements", mock.Anything,
		mock.MatchedBy(func(rows []domain.GroupSettlement) bool {
			if len(rows) != 2 {
				return false
			}
			// Debtors pay in ascending user id order.
			return rows[0].FromUserID == 2 && rows[0].ToUserID == 1 &&
				rows[0].Amount.Equal(decimal.RequireFromString("30.00")) &&
				rows[1].FromUserID == 3 && rows[1].ToUserID == 1
		}),
	).Return([]domain.GroupSettlement{
		{SettlementID: 100, GroupID: 5, FromUserID: 2, ToUserID: 1, Amount: decimal.RequireFromString("30.00")},
		{SettlementID: 101, GroupID: 5, FromUserID: 3, ToUserID: 1, Amount: decimal.RequireFromString("30.00")},
	}, nil).Once()
	s.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.MatchedBy(func(log domain.AuditLog) bool {
		return log.Action == domain.AuditSettlementExecuted
	})).Return(nil).Twice()

	settled, err := s.service.CreateSettlements(ctx, 1, 5)

	s.Require().NoError(err)
	s.Len(settled, 2)
	s.mockGroupRepo.AssertExpectations(s.T())
	s.mockAuditRepo.AssertExpectations(s.T())
}

func (s *GroupServiceTestSuite) TestCreateSettlements_AlreadySettled() {
	ctx := context.Background()
	s.expectGroupMember(5, 1)
	s.mockGroupRepo.On("ListGroupMemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2}, nil).Once()
	s.mockGroupRepo.On("SumPaidByUser", mock.Anything, int64(5)).Return(map[int64]decimal.Decimal{}, nil).Once()
	s.mockGroupRepo.On("SumOwedByUser", mock.Anything, int64(5)).Return(map[int64]decimal.Decimal{}, nil).Once()

	settled, err := s.service.CreateSettlements(ctx, 1, 5)

	s.Require().NoError(err)
	s.Empty(settled)
	s.mockGroupRepo.AssertNotCalled(s.T(), "SaveSettlements", mock.Anything, mock.Anything)
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
