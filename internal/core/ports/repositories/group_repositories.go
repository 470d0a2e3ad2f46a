package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group by its id.
	FindGroupByID(ctx context.Context, groupID int64) (*domain.Group, error)

	// FindGroupMembership retrieves a user's membership in a group, if any.
	FindGroupMembership(ctx context.Context, groupID, userID int64) (*domain.GroupMembership, error)

	// ListGroupMemberIDs retrieves a group's member ids in ascending order.
	ListGroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error)

	// ListGroupExpenses retrieves a group's expenses, most recent first.
	ListGroupExpenses(ctx context.Context, groupID int64) ([]domain.GroupExpense, error)

	// SumPaidByUser aggregates total amounts paid per member of a group.
	SumPaidByUser(ctx context.Context, groupID int64) (map[int64]decimal.Decimal, error)

	// SumOwedByUser aggregates total split amounts owed per member of a group.
	SumOwedByUser(ctx context.Context, groupID int64) (map[int64]decimal.Decimal, error)

	// ListGroupSettlements retrieves a group's persisted settlements, newest first.
	ListGroupSettlements(ctx context.Context, groupID int64) ([]domain.GroupSettlement, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroupWithMembers persists a group and its initial memberships atomically.
	SaveGroupWithMembers(ctx context.Context, group domain.Group, memberships []domain.GroupMembership) (*domain.Group, error)

	// SaveExpenseWithSplits persists a group expense and its split rows atomically.
	SaveExpenseWithSplits(ctx context.Context, expense domain.GroupExpense, splits []domain.GroupExpenseSplit) (*domain.GroupExpense, error)

	// SaveSettlements persists the settlement rows computed for a group,
	// returning them with their assigned ids.
	SaveSettlements(ctx context.Context, settlements []domain.GroupSettlement) ([]domain.GroupSettlement, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
