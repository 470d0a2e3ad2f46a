package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// GroupSvcFacade defines expense-group operations: groups, shared expenses
// and greedy debt settlement.
type GroupSvcFacade interface {
	// CreateGroup creates a group with the caller as admin plus the given members.
	CreateGroup(ctx context.Context, creatorUserID int64, name string, memberIDs []int64) (*domain.Group, error)

	// CreateExpense records a shared expense with explicit or equal splits.
	CreateExpense(ctx context.Context, requestingUserID, groupID int64, req dto.CreateGroupExpenseRequest) (*domain.GroupExpense, []domain.GroupExpenseSplit, error)

	// ListExpenses retrieves a group's expenses, most recent first.
	ListExpenses(ctx context.Context, requestingUserID, groupID int64) ([]domain.GroupExpense, error)

	// ComputeBalances returns each member's signed net position
	// (paid minus owed), positive meaning the member is owed money.
	ComputeBalances(ctx context.Context, requestingUserID, groupID int64) (map[int64]decimal.Decimal, error)

	// CreateSettlements nets the group's balances into payment instructions
	// and persists them.
	CreateSettlements(ctx context.Context, requestingUserID, groupID int64) ([]domain.GroupSettlement, error)

	// ListSettlements retrieves a group's persisted settlements, newest first.
	ListSettlements(ctx context.Context, requestingUserID, groupID int64) ([]domain.GroupSettlement, error)
}
