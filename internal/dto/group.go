package dto

import (
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// CreateGroupRequest creates an expense group; the caller becomes admin and
// the listed members are added alongside.
type CreateGroupRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	MemberIDs []int64 `json:"memberIDs"`
}

// GroupSplitInput is one explicit split line of a group expense.
type GroupSplitInput struct {
	UserID int64  `json:"userID" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// CreateGroupExpenseRequest records a shared expense. When Splits is empty the
// amount is divided equally among all group members, the leftover cent going
// to the first member; explicit splits must sum to the total.
type CreateGroupExpenseRequest struct {
	PaidBy      int64             `json:"paidBy" binding:"required"`
	Amount      string            `json:"amount" binding:"required"`
	Currency    string            `json:"currency" binding:"required,len=3"`
	Description string            `json:"description" binding:"max=500"`
	Splits      []GroupSplitInput `json:"splits,omitempty"`
}

// GroupResponse is the API representation of a group.
type GroupResponse struct {
	GroupID   int64  `json:"groupID"`
	Name      string `json:"name"`
	CreatedBy int64  `json:"createdBy"`
}

// GroupExpenseResponse is the API representation of a group expense.
type GroupExpenseResponse struct {
	ExpenseID   int64           `json:"expenseID"`
	GroupID     int64           `json:"groupID"`
	PaidBy      int64           `json:"paidBy"`
	Amount      string          `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Splits      []SplitResponse `json:"splits,omitempty"`
}

// GroupBalanceEntry is one member's signed net position in a group.
type GroupBalanceEntry struct {
	UserID int64  `json:"userID"`
	Amount string `json:"amount"`
}

// SettlementResponse is one suggested or persisted settlement payment.
type SettlementResponse struct {
	SettlementID int64  `json:"settlementID,omitempty"`
	FromUserID   int64  `json:"fromUserID"`
	ToUserID     int64  `json:"toUserID"`
	Amount       string `json:"amount"`
}

// ToGroupResponse maps a domain group to its API representation.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{GroupID: g.GroupID, Name: g.Name, CreatedBy: g.CreatedBy}
}

// ToGroupExpenseResponse maps a group expense and its splits to the API shape.
func ToGroupExpenseResponse(e *domain.GroupExpense, splits []domain.GroupExpenseSplit) GroupExpenseResponse {
	resp := GroupExpenseResponse{
		ExpenseID:   e.ExpenseID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Amount:      e.TotalAmount.StringFixed(2),
		Currency:    e.Currency,
		Description: e.Description,
	}
	for _, s := range splits {
		resp.Splits = append(resp.Splits, SplitResponse{UserID: s.UserID, Amount: s.AmountOwed.StringFixed(2)})
	}
	return resp
}

// ToSettlementResponses maps persisted settlements to the API shape.
func ToSettlementResponses(settlements []domain.GroupSettlement) []SettlementResponse {
	out := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		out[i] = SettlementResponse{
			SettlementID: s.SettlementID,
			FromUserID:   s.FromUserID,
			ToUserID:     s.ToUserID,
			Amount:       s.Amount.StringFixed(2),
		}
	}
	return out
}
