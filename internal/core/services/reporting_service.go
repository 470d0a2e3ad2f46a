package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/ledger"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	authorizer portssvc.WorkspaceAuthorizerSvc
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	authorizer portssvc.WorkspaceAuthorizerSvc,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		txnRepo:    txnRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// WorkspaceBalances computes each member's per-currency net position from the
// workspace's expense splits. For every expense, the payer is credited each
// other member's share and that member is debited the same amount; the payer's
// own share cancels out and is skipped.
func (s *reportingService) WorkspaceBalances(ctx context.Context, requestingUserID, workspaceID int64) (*dto.WorkspaceBalancesResponse, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}

	txns, splitsByTxn, err := s.txnRepo.ListExpenseSplitsByWorkspace(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense splits", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}

	// currency -> userID -> net minor units
	nets := make(map[string]map[int64]int64)
	for _, txn := range txns {
		byUser := nets[txn.Currency]
		if byUser == nil {
			byUser = make(map[int64]int64)
			nets[txn.Currency] = byUser
		}
		for _, split := range splitsByTxn[txn.TransactionID] {
			if split.UserID == txn.CreatedBy {
				continue
			}
			byUser[txn.CreatedBy] += split.AmountMinor
			byUser[split.UserID] -= split.AmountMinor
		}
	}

	resp := &dto.WorkspaceBalancesResponse{
		Balances:  make(map[string][]dto.BalanceEntry, len(nets)),
		Transfers: make(map[string][]dto.SuggestedTransfer, len(nets)),
	}
	for currency, byUser := range nets {
		userIDs := make([]int64, 0, len(byUser))
		for id := range byUser {
			userIDs = append(userIDs, id)
		}
		sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

		entries := make([]dto.BalanceEntry, 0, len(userIDs))
		for _, id := range userIDs {
			entries = append(entries, dto.BalanceEntry{
				UserID:      id,
				AmountMinor: byUser[id],
				Amount:      ledger.FormatMinor(byUser[id], currency),
			})
		}
		resp.Balances[currency] = entries

		transfers := make([]dto.SuggestedTransfer, 0)
		for _, t := range ledger.SimplifyMinor(byUser) {
			transfers = append(transfers, dto.SuggestedTransfer{
				FromUserID: t.FromUserID,
				ToUserID:   t.ToUserID,
				Amount:     ledger.FormatMinor(t.AmountMinor, currency),
			})
		}
		resp.Transfers[currency] = transfers
	}

	resp.Report = s.renderBalanceReport(ctx, resp)
	return resp, nil
}

// renderBalanceReport formats the balances and suggested transfers as the text
// block the bot frontends send verbatim.
func (s *reportingService) renderBalanceReport(ctx context.Context, resp *dto.WorkspaceBalancesResponse) string {
	if len(resp.Balances) == 0 {
		return "No shared expenses yet."
	}

	currencies := make([]string, 0, len(resp.Balances))
	for c := range resp.Balances {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	var b strings.Builder
	for _, currency := range currencies {
		fmt.Fprintf(&b, "Balances (%s):\n", currency)
		for _, e := range resp.Balances[currency] {
			fmt.Fprintf(&b, "  %s: %s\n", s.displayName(ctx, e.UserID), e.Amount)
		}
		transfers := resp.Transfers[currency]
		if len(transfers) == 0 {
			b.WriteString("All settled up.\n")
			continue
		}
		b.WriteString("To settle up:\n")
		for _, t := range transfers {
			fmt.Fprintf(&b, "  %s pays %s %s\n",
				s.displayName(ctx, t.FromUserID), s.displayName(ctx, t.ToUserID), t.Amount)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *reportingService) displayName(ctx context.Context, userID int64) string {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Sprintf("user:%d", userID)
	}
	return user.DisplayName()
}

// MonthlyExpenseReport sums the given month's expenses by category and
// currency, largest first.
func (s *reportingService) MonthlyExpenseReport(ctx context.Context, requestingUserID, workspaceID int64, now time.Time) (*dto.MonthlyReportResponse, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	totals, err := s.txnRepo.SumExpensesByCategory(ctx, workspaceID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expenses", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}

	resp := &dto.MonthlyReportResponse{Rows: make([]dto.CategoryTotalResponse, 0, len(totals))}
	var b strings.Builder
	fmt.Fprintf(&b, "Expenses for %s:\n", from.Format("January 2006"))
	if len(totals) == 0 {
		b.WriteString("  nothing recorded")
	}
	for _, row := range totals {
		resp.Rows = append(resp.Rows, dto.CategoryTotalResponse{
			Category: row.Category,
			Currency: row.Currency,
			Total:    ledger.FormatMinor(row.TotalMinor, row.Currency),
		})
		fmt.Fprintf(&b, "  %s: %s\n", row.Category, ledger.FormatMinor(row.TotalMinor, row.Currency))
	}
	resp.Report = strings.TrimRight(b.String(), "\n")
	return resp, nil
}
