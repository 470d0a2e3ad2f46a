package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

type PgxGroupRepository struct {
	pool *pgxpool.Pool
}

// NewPgxGroupRepository creates a new repository for expense-group data.
func NewPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{pool: pool}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

func (r *PgxGroupRepository) SaveGroupWithMembers(ctx context.Context, group domain.Group, memberships []domain.GroupMembership) (*domain.Group, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	groupQuery := `
		INSERT INTO groups (name, created_by, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING group_id;
	`
	err = tx.QueryRow(ctx, groupQuery,
		group.Name,
		group.CreatedBy,
		group.CreatedAt,
		group.LastUpdatedAt,
	).Scan(&group.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}

	batch := &pgx.Batch{}
	memberQuery := `
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	for _, m := range memberships {
		batch.Queue(memberQuery, group.GroupID, m.UserID, m.Role, m.JoinedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to execute member batch for group %d: %w", group.GroupID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit group %d: %w", group.GroupID, err)
	}
	return &group, nil
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID int64) (*domain.Group, error) {
	query := `
		SELECT group_id, name, created_by, created_at, last_updated_at
		FROM groups
		WHERE group_id = $1;
	`
	var g domain.Group
	err := r.pool.QueryRow(ctx, query, groupID).Scan(&g.GroupID, &g.Name, &g.CreatedBy, &g.CreatedAt, &g.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID: %w", err)
	}
	return &g, nil
}

func (r *PgxGroupRepository) FindGroupMembership(ctx context.Context, groupID, userID int64) (*domain.GroupMembership, error) {
	query := `
		SELECT group_id, user_id, role, joined_at
		FROM group_members
		WHERE group_id = $1 AND user_id = $2;
	`
	var m domain.GroupMembership
	err := r.pool.QueryRow(ctx, query, groupID, userID).Scan(&m.GroupID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group membership: %w", err)
	}
	return &m, nil
}

func (r *PgxGroupRepository) ListGroupMemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	query := `
		SELECT user_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY user_id;
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", rows.Err())
	}
	return ids, nil
}

func (r *PgxGroupRepository) SaveExpenseWithSplits(ctx context.Context, expense domain.GroupExpense, splits []domain.GroupExpenseSplit) (*domain.GroupExpense, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	expenseQuery := `
		INSERT INTO group_expenses (group_id, paid_by, total_amount, currency, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING expense_id;
	`
	err = tx.QueryRow(ctx, expenseQuery,
		expense.GroupID,
		expense.PaidBy,
		expense.TotalAmount,
		expense.Currency,
		expense.Description,
		expense.CreatedAt,
		expense.LastUpdatedAt,
	).Scan(&expense.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group expense: %w", err)
	}

	batch := &pgx.Batch{}
	splitQuery := `
		INSERT INTO group_expense_splits (expense_id, user_id, amount_owed)
		VALUES ($1, $2, $3);
	`
	for _, s := range splits {
		batch.Queue(splitQuery, expense.ExpenseID, s.UserID, s.AmountOwed)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to execute split batch for expense %d: %w", expense.ExpenseID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit expense %d: %w", expense.ExpenseID, err)
	}
	return &expense, nil
}

func (r *PgxGroupRepository) ListGroupExpenses(ctx context.Context, groupID int64) ([]domain.GroupExpense, error) {
	query := `
		SELECT expense_id, group_id, paid_by, total_amount, currency, description, created_at, last_updated_at
		FROM group_expenses
		WHERE group_id = $1
		ORDER BY created_at DESC, expense_id DESC;
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.GroupExpense{}
	for rows.Next() {
		var e domain.GroupExpense
		if err := rows.Scan(&e.ExpenseID, &e.GroupID, &e.PaidBy, &e.TotalAmount, &e.Currency, &e.Description, &e.CreatedAt, &e.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return expenses, nil
}

func (r *PgxGroupRepository) SumPaidByUser(ctx context.Context, groupID int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT paid_by, SUM(total_amount)
		FROM group_expenses
		WHERE group_id = $1
		GROUP BY paid_by;
	`
	return r.sumByUser(ctx, query, groupID)
}

func (r *PgxGroupRepository) SumOwedByUser(ctx context.Context, groupID int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT s.user_id, SUM(s.amount_owed)
		FROM group_expense_splits s
		JOIN group_expenses e ON e.expense_id = s.expense_id
		WHERE e.group_id = $1
		GROUP BY s.user_id;
	`
	return r.sumByUser(ctx, query, groupID)
}

func (r *PgxGroupRepository) sumByUser(ctx context.Context, query string, groupID int64) (map[int64]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-user sums: %w", err)
	}
	defer rows.Close()

	sums := map[int64]decimal.Decimal{}
	for rows.Next() {
		var userID int64
		var total decimal.Decimal
		if err := rows.Scan(&userID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan per-user sum: %w", err)
		}
		sums[userID] = total
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating per-user sums: %w", rows.Err())
	}
	return sums, nil
}

func (r *PgxGroupRepository) SaveSettlements(ctx context.Context, settlements []domain.GroupSettlement) ([]domain.GroupSettlement, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO group_settlements (group_id, from_user_id, to_user_id, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING settlement_id;
	`
	saved := make([]domain.GroupSettlement, len(settlements))
	for i, s := range settlements {
		err := tx.QueryRow(ctx, query,
			s.GroupID,
			s.FromUserID,
			s.ToUserID,
			s.Amount,
			s.CreatedAt,
			s.LastUpdatedAt,
		).Scan(&s.SettlementID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert settlement: %w", err)
		}
		saved[i] = s
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit settlements: %w", err)
	}
	return saved, nil
}

func (r *PgxGroupRepository) ListGroupSettlements(ctx context.Context, groupID int64) ([]domain.GroupSettlement, error) {
	query := `
		SELECT settlement_id, group_id, from_user_id, to_user_id, amount, created_at, last_updated_at
		FROM group_settlements
		WHERE group_id = $1
		ORDER BY created_at DESC, settlement_id DESC;
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	settlements := []domain.GroupSettlement{}
	for rows.Next() {
		var s domain.GroupSettlement
		if err := rows.Scan(&s.SettlementID, &s.GroupID, &s.FromUserID, &s.ToUserID, &s.Amount, &s.CreatedAt, &s.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", rows.Err())
	}
	return settlements, nil
}
