package domain

import "github.com/shopspring/decimal"

// WalletType distinguishes workspace-shared wallets from personal ones.
type WalletType string

const (
	WalletShared   WalletType = "shared"
	WalletPersonal WalletType = "personal"
)

// Wallet holds a balance in a single currency. Version is the optimistic-lock
// counter: every balance mutation must carry the version it read, and the
// repository bumps it on success.
type Wallet struct {
	WalletID    int64           `json:"walletID"`
	WorkspaceID int64           `json:"workspaceID"`
	OwnerUserID *int64          `json:"ownerUserID,omitempty"` // nil for shared wallets
	Name        string          `json:"name"`
	Type        WalletType      `json:"type"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	Version     int64           `json:"version"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// Transfer records a wallet-to-wallet balance movement.
type Transfer struct {
	TransferID   int64           `json:"transferID"`
	FromWalletID int64           `json:"fromWalletID"`
	ToWalletID   int64           `json:"toWalletID"`
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}
