package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupRole is a member's role inside an expense group.
type GroupRole string

const (
	GroupAdmin  GroupRole = "admin"
	GroupMember GroupRole = "member"
)

// Group is an ad-hoc expense-sharing circle, independent of workspaces.
// Group amounts are fixed-point decimals quantized to 2 places.
type Group struct {
	GroupID   int64  `json:"groupID"`
	Name      string `json:"name"`
	CreatedBy int64  `json:"createdBy"`
	AuditFields
}

// GroupMembership links a user to a group.
type GroupMembership struct {
	GroupID  int64     `json:"groupID"`
	UserID   int64     `json:"userID"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// GroupExpense is a shared expense paid by one member on behalf of the group.
type GroupExpense struct {
	ExpenseID   int64           `json:"expenseID"`
	GroupID     int64           `json:"groupID"`
	PaidBy      int64           `json:"paidBy"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	AuditFields
}

// GroupExpenseSplit is one member's owed share of a group expense.
type GroupExpenseSplit struct {
	SplitID    int64           `json:"splitID"`
	ExpenseID  int64           `json:"expenseID"`
	UserID     int64           `json:"userID"`
	AmountOwed decimal.Decimal `json:"amountOwed"`
}

// GroupSettlement is a persisted payment instruction produced by the debt
// netting pass over a group's balances.
type GroupSettlement struct {
	SettlementID int64           `json:"settlementID"`
	GroupID      int64           `json:"groupID"`
	FromUserID   int64           `json:"fromUserID"`
	ToUserID     int64           `json:"toUserID"`
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}
