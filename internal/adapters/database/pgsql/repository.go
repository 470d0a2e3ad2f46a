package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

// uniqueViolationCode is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         NewPgxUserRepository(pool),
		WorkspaceRepo:    NewPgxWorkspaceRepository(pool),
		WalletRepo:       NewPgxWalletRepository(pool),
		TransactionRepo:  NewPgxTransactionRepository(pool),
		CategoryRepo:     NewPgxCategoryRepository(pool),
		GroupRepo:        NewPgxGroupRepository(pool),
		ExchangeRateRepo: NewPgxExchangeRateRepository(pool),
		AuditRepo:        NewPgxAuditRepository(pool),
	}
}
