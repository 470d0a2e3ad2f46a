package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its id.
	FindWalletByID(ctx context.Context, walletID int64) (*domain.Wallet, error)

	// ListWalletsByWorkspace retrieves a workspace's wallets ordered by type and name.
	ListWalletsByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Wallet, error)

	// FindWalletByOwner retrieves a user's active personal wallet in a workspace, if any.
	FindWalletByOwner(ctx context.Context, workspaceID, ownerUserID int64) (*domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet and returns it with its assigned id.
	SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error)

	// ApplyTransfer debits one wallet and credits another atomically, guarded
	// by the optimistic version each wallet was read at. It returns
	// apperrors.ErrVersionConflict if either wallet changed underneath.
	ApplyTransfer(ctx context.Context, from, to domain.Wallet, amount decimal.Decimal) (*domain.Transfer, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
