package services

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// WalletSvcFacade defines wallet operations, including the optimistically
// versioned balance transfer.
type WalletSvcFacade interface {
	// CreateWallet creates a wallet in a workspace. Personal wallets are
	// owned by the requesting user.
	CreateWallet(ctx context.Context, requestingUserID, workspaceID int64, req dto.CreateWalletRequest) (*domain.Wallet, error)

	// ListWallets retrieves a workspace's wallets.
	ListWallets(ctx context.Context, requestingUserID, workspaceID int64) ([]domain.Wallet, error)

	// Transfer moves money between two wallets of the same currency under
	// optimistic versioning. Overdrafts are rejected unless the deployment
	// allows negative balances.
	Transfer(ctx context.Context, requestingUserID int64, req dto.TransferRequest) (*domain.Transfer, error)
}
