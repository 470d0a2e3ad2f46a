package domain

import "time"

// TransactionType indicates whether a workspace transaction is money going
// out (expense) or coming in (income).
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// Transaction is one recorded movement within a workspace, stored in integer
// minor units of its currency.
type Transaction struct {
	TransactionID int64           `json:"transactionID"`
	WorkspaceID   int64           `json:"workspaceID"`
	WalletID      int64           `json:"walletID"`
	Type          TransactionType `json:"type"`
	AmountMinor   int64           `json:"amountMinor"`
	Currency      string          `json:"currency"`
	CategoryID    *int64          `json:"categoryID,omitempty"`
	Note          string          `json:"note"`
	CreatedBy     int64           `json:"createdBy"`
	OccurredAt    time.Time       `json:"occurredAt"`
	AuditFields
}

// TransactionSplit materializes one member's share of a transaction, produced
// by the split engine when the transaction is recorded. The shares of one
// transaction always sum to its AmountMinor.
type TransactionSplit struct {
	SplitID       int64 `json:"splitID"`
	TransactionID int64 `json:"transactionID"`
	UserID        int64 `json:"userID"`
	AmountMinor   int64 `json:"amountMinor"`
}
