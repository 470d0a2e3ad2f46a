package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

type PgxWalletRepository struct {
	pool *pgxpool.Pool
}

// NewPgxWalletRepository creates a new repository for wallet and transfer data.
func NewPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{pool: pool}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, workspace_id, owner_user_id, name, type, currency, balance, version, is_active, created_at, last_updated_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.WalletID,
		&w.WorkspaceID,
		&w.OwnerUserID,
		&w.Name,
		&w.Type,
		&w.Currency,
		&w.Balance,
		&w.Version,
		&w.IsActive,
		&w.CreatedAt,
		&w.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan wallet row: %w", err)
	}
	return &w, nil
}

func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	query := `
		INSERT INTO wallets (workspace_id, owner_user_id, name, type, currency, balance, version, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING wallet_id;
	`
	err := r.pool.QueryRow(ctx, query,
		wallet.WorkspaceID,
		wallet.OwnerUserID,
		wallet.Name,
		wallet.Type,
		wallet.Currency,
		wallet.Balance,
		wallet.Version,
		wallet.IsActive,
		wallet.CreatedAt,
		wallet.LastUpdatedAt,
	).Scan(&wallet.WalletID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}
	return &wallet, nil
}

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`
	return scanWallet(r.pool.QueryRow(ctx, query, walletID))
}

func (r *PgxWalletRepository) ListWalletsByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE workspace_id = $1 AND is_active
		ORDER BY type, name;
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets for workspace %d: %w", workspaceID, err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *wallet)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", rows.Err())
	}
	return wallets, nil
}

func (r *PgxWalletRepository) FindWalletByOwner(ctx context.Context, workspaceID, ownerUserID int64) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE workspace_id = $1 AND owner_user_id = $2 AND is_active
		ORDER BY wallet_id
		LIMIT 1;
	`
	return scanWallet(r.pool.QueryRow(ctx, query, workspaceID, ownerUserID))
}

// ApplyTransfer debits one wallet and credits another in a single DB
// transaction. Both UPDATEs are guarded by the version each wallet was read
// at; zero rows affected means a concurrent writer got there first.
func (r *PgxWalletRepository) ApplyTransfer(ctx context.Context, from, to domain.Wallet, amount decimal.Decimal) (*domain.Transfer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now()
	updateQuery := `
		UPDATE wallets
		SET balance = balance + $3, version = version + 1, last_updated_at = $4
		WHERE wallet_id = $1 AND version = $2;
	`
	tag, err := tx.Exec(ctx, updateQuery, from.WalletID, from.Version, amount.Neg(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet %d: %w", from.WalletID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrVersionConflict
	}

	tag, err = tx.Exec(ctx, updateQuery, to.WalletID, to.Version, amount, now)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet %d: %w", to.WalletID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrVersionConflict
	}

	transfer := domain.Transfer{
		FromWalletID: from.WalletID,
		ToWalletID:   to.WalletID,
		Amount:       amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	insertQuery := `
		INSERT INTO transfers (from_wallet_id, to_wallet_id, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transfer_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		transfer.FromWalletID,
		transfer.ToWalletID,
		transfer.Amount,
		transfer.CreatedAt,
		transfer.LastUpdatedAt,
	).Scan(&transfer.TransferID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transfer record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	return &transfer, nil
}
