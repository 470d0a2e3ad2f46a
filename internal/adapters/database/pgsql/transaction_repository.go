package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction and split data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, workspace_id, wallet_id, type, amount_minor, currency, category_id, note, created_by, occurred_at, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.WorkspaceID,
		&txn.WalletID,
		&txn.Type,
		&txn.AmountMinor,
		&txn.Currency,
		&txn.CategoryID,
		&txn.Note,
		&txn.CreatedBy,
		&txn.OccurredAt,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}
	return &txn, nil
}

// SaveTransactionWithSplits persists a transaction and its split rows in one
// database transaction, batching the split inserts.
func (r *PgxTransactionRepository) SaveTransactionWithSplits(ctx context.Context, txn domain.Transaction, splits []domain.TransactionSplit) (*domain.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertQuery := `
		INSERT INTO transactions (workspace_id, wallet_id, type, amount_minor, currency, category_id, note, created_by, occurred_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING transaction_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		txn.WorkspaceID,
		txn.WalletID,
		txn.Type,
		txn.AmountMinor,
		txn.Currency,
		txn.CategoryID,
		txn.Note,
		txn.CreatedBy,
		txn.OccurredAt,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	).Scan(&txn.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	batch := &pgx.Batch{}
	splitQuery := `
		INSERT INTO transaction_splits (transaction_id, user_id, amount_minor)
		VALUES ($1, $2, $3);
	`
	for _, split := range splits {
		batch.Queue(splitQuery, txn.TransactionID, split.UserID, split.AmountMinor)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to execute split batch for transaction %d: %w", txn.TransactionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction %d: %w", txn.TransactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	return scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
}

func (r *PgxTransactionRepository) ListTransactionsByWorkspace(ctx context.Context, workspaceID int64, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE workspace_id = $1
		ORDER BY occurred_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

// ListExpenseSplitsByWorkspace loads every expense transaction of a workspace
// together with its split rows, keyed by transaction id.
func (r *PgxTransactionRepository) ListExpenseSplitsByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Transaction, map[int64][]domain.TransactionSplit, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE workspace_id = $1 AND type = 'expense'
		ORDER BY transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expense transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, err
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	splitQuery := `
		SELECT s.split_id, s.transaction_id, s.user_id, s.amount_minor
		FROM transaction_splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		WHERE t.workspace_id = $1 AND t.type = 'expense'
		ORDER BY s.transaction_id, s.split_id;
	`
	splitRows, err := r.pool.Query(ctx, splitQuery, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transaction splits: %w", err)
	}
	defer splitRows.Close()

	splits := make(map[int64][]domain.TransactionSplit)
	for splitRows.Next() {
		var s domain.TransactionSplit
		if err := splitRows.Scan(&s.SplitID, &s.TransactionID, &s.UserID, &s.AmountMinor); err != nil {
			return nil, nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits[s.TransactionID] = append(splits[s.TransactionID], s)
	}
	if splitRows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating split rows: %w", splitRows.Err())
	}
	return txns, splits, nil
}

func (r *PgxTransactionRepository) SumExpensesByCategory(ctx context.Context, workspaceID int64, from, to time.Time) ([]portsrepo.CategoryTotal, error) {
	query := `
		SELECT COALESCE(c.name, 'uncategorized'), t.currency, SUM(t.amount_minor)
		FROM transactions t
		LEFT JOIN categories c ON c.category_id = t.category_id
		WHERE t.workspace_id = $1 AND t.type = 'expense'
		  AND t.occurred_at >= $2 AND t.occurred_at < $3
		GROUP BY c.name, t.currency
		ORDER BY t.currency, SUM(t.amount_minor) DESC;
	`
	rows, err := r.pool.Query(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	totals := []portsrepo.CategoryTotal{}
	for rows.Next() {
		var row portsrepo.CategoryTotal
		if err := rows.Scan(&row.Category, &row.Currency, &row.TotalMinor); err != nil {
			return nil, fmt.Errorf("failed to scan category total row: %w", err)
		}
		totals = append(totals, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", rows.Err())
	}
	return totals, nil
}
