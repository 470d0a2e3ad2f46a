package services

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// TransactionSvcFacade defines workspace ledger operations.
type TransactionSvcFacade interface {
	// CreateTransaction records an expense or income. Expenses are split
	// across all workspace members proportionally to their share weights and
	// the split rows are persisted with the transaction; with no members the
	// payer carries the full amount. Incomes get a single split to the actor.
	CreateTransaction(ctx context.Context, requestingUserID, workspaceID int64, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.TransactionSplit, error)

	// ListTransactions retrieves a workspace's transactions, most recent first.
	ListTransactions(ctx context.Context, requestingUserID, workspaceID int64, limit, offset int) ([]domain.Transaction, error)
}

// CategorySvcFacade defines category operations.
type CategorySvcFacade interface {
	// CreateCategory creates an expense category in a workspace.
	CreateCategory(ctx context.Context, requestingUserID, workspaceID int64, name string) (*domain.Category, error)

	// ListCategories retrieves a workspace's categories ordered by name.
	ListCategories(ctx context.Context, requestingUserID, workspaceID int64) ([]domain.Category, error)
}
