package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/core/ledger"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// groupService implements the GroupSvcFacade interface
type groupService struct {
	BaseService
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewGroupService creates a new group service with the provided dependencies
func NewGroupService(
	groupRepo portsrepo.GroupRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	auditRepo portsrepo.AuditLogRepositoryFacade,
) portssvc.GroupSvcFacade {
	return &groupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// ensureGroupMember verifies the user belongs to the group, translating a
// missing membership into ErrForbidden so the caller cannot probe group ids.
func (s *groupService) ensureGroupMember(ctx context.Context, groupID, userID int64) (*domain.GroupMembership, error) {
	membership, err := s.groupRepo.FindGroupMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d is not a member of group %d", apperrors.ErrForbidden, userID, groupID)
		}
		return nil, err
	}
	return membership, nil
}

// CreateGroup creates a group with the caller as admin plus the given members.
func (s *groupService) CreateGroup(ctx context.Context, creatorUserID int64, name string, memberIDs []int64) (*domain.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", apperrors.ErrValidation)
	}

	// Deduplicate and order the member set; the creator is always included.
	seen := map[int64]struct{}{creatorUserID: {}}
	ids := []int64{creatorUserID}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if _, err := s.userRepo.FindUserByID(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: member %d does not exist", apperrors.ErrValidation, id)
			}
			return nil, err
		}
	}

	now := time.Now()
	group := domain.Group{
		Name:      name,
		CreatedBy: creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	memberships := make([]domain.GroupMembership, 0, len(ids))
	for _, id := range ids {
		role := domain.GroupMember
		if id == creatorUserID {
			role = domain.GroupAdmin
		}
		memberships = append(memberships, domain.GroupMembership{
			UserID:   id,
			Role:     role,
			JoinedAt: now,
		})
	}

	saved, err := s.groupRepo.SaveGroupWithMembers(ctx, group, memberships)
	if err != nil {
		s.LogError(ctx, err, "Failed to save group", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Group created",
		slog.Int64("group_id", saved.GroupID),
		slog.Int("members", len(memberships)))
	return saved, nil
}

// CreateExpense records a shared expense with explicit or equal splits.
func (s *groupService) CreateExpense(ctx context.Context, requestingUserID, groupID int64, req dto.CreateGroupExpenseRequest) (*domain.GroupExpense, []domain.GroupExpenseSplit, error) {
	if _, err := s.ensureGroupMember(ctx, groupID, requestingUserID); err != nil {
		return nil, nil, err
	}
	if _, err := s.ensureGroupMember(ctx, groupID, req.PaidBy); err != nil {
		return nil, nil, fmt.Errorf("%w: payer is not a group member", apperrors.ErrValidation)
	}

	total, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q is not a valid amount", apperrors.ErrInvalidAmount, req.Amount)
	}
	total = ledger.Quantize2(total)
	if !total.IsPositive() {
		return nil, nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrInvalidAmount)
	}

	memberIDs, err := s.groupRepo.ListGroupMemberIDs(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	var splits []domain.GroupExpenseSplit
	if len(req.Splits) > 0 {
		splits, err = s.buildExplicitSplits(ctx, groupID, total, req.Splits)
	} else {
		splits, err = buildEqualSplits(total, memberIDs)
	}
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	expense := domain.GroupExpense{
		GroupID:     groupID,
		PaidBy:      req.PaidBy,
		TotalAmount: total,
		Currency:    ledger.NormalizeCurrency(req.Currency),
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.groupRepo.SaveExpenseWithSplits(ctx, expense, splits)
	if err != nil {
		s.LogError(ctx, err, "Failed to save group expense", slog.Int64("group_id", groupID))
		return nil, nil, err
	}
	for i := range splits {
		splits[i].ExpenseID = saved.ExpenseID
	}

	audit := domain.AuditLog{
		ActorUserID: requestingUserID,
		Action:      domain.AuditExpenseCreated,
		EntityType:  "group_expense",
		EntityID:    saved.ExpenseID,
		RequestID:   middleware.GetRequestIDFromCtx(ctx),
		CreatedAt:   now,
	}
	if err := s.auditRepo.SaveAuditLog(ctx, audit); err != nil {
		s.LogError(ctx, err, "Failed to append audit log", slog.Int64("expense_id", saved.ExpenseID))
	}

	s.LogInfo(ctx, "Group expense created",
		slog.Int64("expense_id", saved.ExpenseID),
		slog.Int64("group_id", groupID),
		slog.String("amount", total.StringFixed(2)))
	return saved, splits, nil
}

// buildExplicitSplits validates caller-provided split lines: every line must
// name a group member and the amounts must add up to the expense total exactly.
func (s *groupService) buildExplicitSplits(ctx context.Context, groupID int64, total decimal.Decimal, inputs []dto.GroupSplitInput) ([]domain.GroupExpenseSplit, error) {
	splits := make([]domain.GroupExpenseSplit, 0, len(inputs))
	sum := decimal.Zero
	seen := make(map[int64]struct{}, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate split for user %d", apperrors.ErrValidation, in.UserID)
		}
		seen[in.UserID] = struct{}{}
		if _, err := s.ensureGroupMember(ctx, groupID, in.UserID); err != nil {
			return nil, fmt.Errorf("%w: split user %d is not a group member", apperrors.ErrValidation, in.UserID)
		}
		amount, err := decimal.NewFromString(in.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid amount", apperrors.ErrInvalidAmount, in.Amount)
		}
		amount = ledger.Quantize2(amount)
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: split amounts cannot be negative", apperrors.ErrInvalidAmount)
		}
		sum = sum.Add(amount)
		splits = append(splits, domain.GroupExpenseSplit{UserID: in.UserID, AmountOwed: amount})
	}
	if !sum.Equal(total) {
		return nil, fmt.Errorf("%w: splits sum to %s, expense total is %s",
			apperrors.ErrValidation, sum.StringFixed(2), total.StringFixed(2))
	}
	return splits, nil
}

// buildEqualSplits divides the total evenly across the members at 2 decimal
// places; the rounding leftover lands on the first member so the shares always
// reconstruct the total. The per-share is floored so the leftover stays
// non-negative.
func buildEqualSplits(total decimal.Decimal, memberIDs []int64) ([]domain.GroupExpenseSplit, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: group has no members", apperrors.ErrValidation)
	}
	n := decimal.NewFromInt(int64(len(memberIDs)))
	per := total.Div(n).RoundDown(2)
	splits := make([]domain.GroupExpenseSplit, len(memberIDs))
	for i, id := range memberIDs {
		splits[i] = domain.GroupExpenseSplit{UserID: id, AmountOwed: per}
	}
	leftover := total.Sub(per.Mul(n))
	splits[0].AmountOwed = ledger.Quantize2(splits[0].AmountOwed.Add(leftover))
	return splits, nil
}

// ListExpenses retrieves a group's expenses, most recent first.
func (s *groupService) ListExpenses(ctx context.Context, requestingUserID, groupID int64) ([]domain.GroupExpense, error) {
	if _, err := s.ensureGroupMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListGroupExpenses(ctx, groupID)
}

// ComputeBalances returns each member's signed net position: total paid minus
// total owed, positive meaning the member is owed money.
func (s *groupService) ComputeBalances(ctx context.Context, requestingUserID, groupID int64) (map[int64]decimal.Decimal, error) {
	if _, err := s.ensureGroupMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	memberIDs, err := s.groupRepo.ListGroupMemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	paid, err := s.groupRepo.SumPaidByUser(ctx, groupID)
	if err != nil {
		return nil, err
	}
	owed, err := s.groupRepo.SumOwedByUser(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := make(map[int64]decimal.Decimal, len(memberIDs))
	for _, id := range memberIDs {
		balances[id] = ledger.Quantize2(paid[id].Sub(owed[id]))
	}
	return balances, nil
}

// CreateSettlements nets the group's balances into payment instructions and
// persists them.
func (s *groupService) CreateSettlements(ctx context.Context, requestingUserID, groupID int64) ([]domain.GroupSettlement, error) {
	balances, err := s.ComputeBalances(ctx, requestingUserID, groupID)
	if err != nil {
		return nil, err
	}

	plan := ledger.Simplify(balances)
	if len(plan) == 0 {
		s.LogInfo(ctx, "Group already settled", slog.Int64("group_id", groupID))
		return []domain.GroupSettlement{}, nil
	}

	now := time.Now()
	rows := make([]domain.GroupSettlement, len(plan))
	for i, p := range plan {
		rows[i] = domain.GroupSettlement{
			GroupID:    groupID,
			FromUserID: p.FromUserID,
			ToUserID:   p.ToUserID,
			Amount:     p.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}

	saved, err := s.groupRepo.SaveSettlements(ctx, rows)
	if err != nil {
		s.LogError(ctx, err, "Failed to save settlements", slog.Int64("group_id", groupID))
		return nil, err
	}

	requestID := middleware.GetRequestIDFromCtx(ctx)
	for _, row := range saved {
		audit := domain.AuditLog{
			ActorUserID: requestingUserID,
			Action:      domain.AuditSettlementExecuted,
			EntityType:  "group_settlement",
			EntityID:    row.SettlementID,
			RequestID:   requestID,
			CreatedAt:   now,
		}
		if err := s.auditRepo.SaveAuditLog(ctx, audit); err != nil {
			s.LogError(ctx, err, "Failed to append audit log", slog.Int64("settlement_id", row.SettlementID))
		}
	}

	s.LogInfo(ctx, "Settlements created",
		slog.Int64("group_id", groupID),
		slog.Int("count", len(saved)))
	return saved, nil
}

// ListSettlements retrieves a group's persisted settlements, newest first.
func (s *groupService) ListSettlements(ctx context.Context, requestingUserID, groupID int64) ([]domain.GroupSettlement, error) {
	if _, err := s.ensureGroupMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListGroupSettlements(ctx, groupID)
}
