package repositories

import (
	"context"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// CategoryTotal is one row of the monthly expense report: the summed expenses
// of a category in one currency.
type CategoryTotal struct {
	Category   string
	Currency   string
	TotalMinor int64
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its id.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactionsByWorkspace retrieves a workspace's transactions, most recent first.
	ListTransactionsByWorkspace(ctx context.Context, workspaceID int64, limit, offset int) ([]domain.Transaction, error)

	// ListExpenseSplitsByWorkspace retrieves every expense transaction of a
	// workspace together with its split rows, keyed by transaction id.
	ListExpenseSplitsByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Transaction, map[int64][]domain.TransactionSplit, error)

	// SumExpensesByCategory aggregates expense totals per category and
	// currency over [from, to), largest totals first within a currency.
	SumExpensesByCategory(ctx context.Context, workspaceID int64, from, to time.Time) ([]CategoryTotal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactionWithSplits persists a transaction and its split rows in
	// one database transaction, returning the transaction with its id.
	SaveTransactionWithSplits(ctx context.Context, txn domain.Transaction, splits []domain.TransactionSplit) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
