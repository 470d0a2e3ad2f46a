package dto

import (
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// CreateWalletRequest creates a wallet inside a workspace.
type CreateWalletRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Type     string `json:"type" binding:"required,oneof=shared personal"`
	Currency string `json:"currency" binding:"required,len=3"`
}

// TransferRequest moves money between two wallets. Amount is a decimal string.
// The destination is either an explicit wallet id or a user id, which resolves
// to that user's personal wallet in the source wallet's workspace.
type TransferRequest struct {
	FromWalletID int64  `json:"fromWalletID" binding:"required"`
	ToWalletID   int64  `json:"toWalletID"`
	ToUserID     int64  `json:"toUserID"`
	Amount       string `json:"amount" binding:"required"`
}

// WalletResponse is the API representation of a wallet.
type WalletResponse struct {
	WalletID    int64  `json:"walletID"`
	WorkspaceID int64  `json:"workspaceID"`
	OwnerUserID *int64 `json:"ownerUserID,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
	Balance     string `json:"balance"`
	IsActive    bool   `json:"isActive"`
}

// TransferResponse is the API representation of an executed transfer.
type TransferResponse struct {
	TransferID   int64  `json:"transferID"`
	FromWalletID int64  `json:"fromWalletID"`
	ToWalletID   int64  `json:"toWalletID"`
	Amount       string `json:"amount"`
}

// ToWalletResponse maps a domain wallet to its API representation.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:    w.WalletID,
		WorkspaceID: w.WorkspaceID,
		OwnerUserID: w.OwnerUserID,
		Name:        w.Name,
		Type:        string(w.Type),
		Currency:    w.Currency,
		Balance:     w.Balance.StringFixed(2),
		IsActive:    w.IsActive,
	}
}

// ToTransferResponse maps a domain transfer to its API representation.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:   t.TransferID,
		FromWalletID: t.FromWalletID,
		ToWalletID:   t.ToWalletID,
		Amount:       t.Amount.StringFixed(2),
	}
}
