package services

import (
	"context"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// ReportingSvcFacade defines workspace balance and reporting operations.
type ReportingSvcFacade interface {
	// WorkspaceBalances computes each member's per-currency net position from
	// the workspace's expense splits, along with the transfers that would
	// settle them and a formatted text report for the bot frontends.
	WorkspaceBalances(ctx context.Context, requestingUserID, workspaceID int64) (*dto.WorkspaceBalancesResponse, error)

	// MonthlyExpenseReport sums the month's expenses by category and
	// currency, largest first. now anchors the month, usually time.Now().
	MonthlyExpenseReport(ctx context.Context, requestingUserID, workspaceID int64, now time.Time) (*dto.MonthlyReportResponse, error)
}
