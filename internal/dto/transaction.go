package dto

import (
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/core/ledger"
)

// CreateTransactionRequest records a workspace expense or income. Amount is a
// decimal display string ("12.50"); the service converts it to minor units.
type CreateTransactionRequest struct {
	WalletID   int64  `json:"walletID" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=expense income"`
	Amount     string `json:"amount" binding:"required"`
	Currency   string `json:"currency" binding:"required,len=3"`
	CategoryID *int64 `json:"categoryID,omitempty"`
	Note       string `json:"note" binding:"max=500"`
}

// SplitResponse is one member's materialized share of a transaction.
type SplitResponse struct {
	UserID int64  `json:"userID"`
	Amount string `json:"amount"`
}

// TransactionResponse is the API representation of a workspace transaction.
type TransactionResponse struct {
	TransactionID int64           `json:"transactionID"`
	WalletID      int64           `json:"walletID"`
	Type          string          `json:"type"`
	Amount        string          `json:"amount"`
	Currency      string          `json:"currency"`
	CategoryID    *int64          `json:"categoryID,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedBy     int64           `json:"createdBy"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Splits        []SplitResponse `json:"splits,omitempty"`
}

// ToTransactionResponse maps a transaction and its splits to the API shape,
// rendering minor units back into display decimals.
func ToTransactionResponse(txn *domain.Transaction, splits []domain.TransactionSplit) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		WalletID:      txn.WalletID,
		Type:          string(txn.Type),
		Amount:        ledger.FormatMinor(txn.AmountMinor, txn.Currency),
		Currency:      txn.Currency,
		CategoryID:    txn.CategoryID,
		Note:          txn.Note,
		CreatedBy:     txn.CreatedBy,
		OccurredAt:    txn.OccurredAt,
	}
	for _, s := range splits {
		resp.Splits = append(resp.Splits, SplitResponse{
			UserID: s.UserID,
			Amount: ledger.FormatMinor(s.AmountMinor, txn.Currency),
		})
	}
	return resp
}
