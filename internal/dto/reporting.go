package dto

// BalanceEntry is one member's signed net position in one currency of a
// workspace, in both minor units and display form.
type BalanceEntry struct {
	UserID      int64  `json:"userID"`
	AmountMinor int64  `json:"amountMinor"`
	Amount      string `json:"amount"`
}

// SuggestedTransfer is one payment instruction that would settle workspace
// balances in one currency.
type SuggestedTransfer struct {
	FromUserID int64  `json:"fromUserID"`
	ToUserID   int64  `json:"toUserID"`
	Amount     string `json:"amount"`
}

// WorkspaceBalancesResponse groups balances and suggested settling transfers
// by currency.
type WorkspaceBalancesResponse struct {
	Balances  map[string][]BalanceEntry      `json:"balances"`
	Transfers map[string][]SuggestedTransfer `json:"transfers"`
	Report    string                         `json:"report"`
}

// CategoryTotalResponse is one row of the monthly expense report.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// MonthlyReportResponse is the current month's expenses grouped by category.
type MonthlyReportResponse struct {
	Rows   []CategoryTotalResponse `json:"rows"`
	Report string                  `json:"report"`
}
