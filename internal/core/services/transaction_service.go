package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/core/ledger"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	workspaceRepo   portsrepo.WorkspaceRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
	authorizer      portssvc.WorkspaceAuthorizerSvc
}

// NewTransactionService creates a new transaction service with the provided dependencies
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	authorizer portssvc.WorkspaceAuthorizerSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		workspaceRepo:   workspaceRepo,
		categoryRepo:    categoryRepo,
		authorizer:      authorizer,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records an expense or income and materializes its splits.
func (s *transactionService) CreateTransaction(ctx context.Context, requestingUserID, workspaceID int64, req dto.CreateTransactionRequest) (*domain.Transaction, []domain.TransactionSplit, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, nil, err
	}

	currency := ledger.NormalizeCurrency(req.Currency)
	amountMinor, err := ledger.ParseAmountToMinor(req.Amount, currency)
	if err != nil {
		return nil, nil, err
	}
	if amountMinor <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: unknown category", apperrors.ErrValidation)
			}
			return nil, nil, err
		}
		if category.WorkspaceID != workspaceID {
			return nil, nil, fmt.Errorf("%w: category belongs to another workspace", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		WorkspaceID: workspaceID,
		WalletID:    req.WalletID,
		Type:        domain.TransactionType(req.Type),
		AmountMinor: amountMinor,
		Currency:    currency,
		CategoryID:  req.CategoryID,
		Note:        req.Note,
		CreatedBy:   requestingUserID,
		OccurredAt:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	splits, err := s.buildSplits(ctx, txn)
	if err != nil {
		return nil, nil, err
	}

	saved, err := s.transactionRepo.SaveTransactionWithSplits(ctx, txn, splits)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.Int64("workspace_id", workspaceID),
			slog.Int64("amount_minor", amountMinor))
		return nil, nil, err
	}
	for i := range splits {
		splits[i].TransactionID = saved.TransactionID
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.Int64("transaction_id", saved.TransactionID),
		slog.String("type", string(saved.Type)),
		slog.String("amount", ledger.FormatMinor(saved.AmountMinor, saved.Currency)))
	return saved, splits, nil
}

// buildSplits materializes the per-member shares for a transaction. Expenses
// are split over all members by share weight; with no members the payer
// carries 100%. Incomes always go entirely to the actor.
func (s *transactionService) buildSplits(ctx context.Context, txn domain.Transaction) ([]domain.TransactionSplit, error) {
	if txn.Type == domain.Income {
		return []domain.TransactionSplit{{UserID: txn.CreatedBy, AmountMinor: txn.AmountMinor}}, nil
	}

	memberships, err := s.workspaceRepo.ListMemberships(ctx, txn.WorkspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships for split", slog.Int64("workspace_id", txn.WorkspaceID))
		return nil, err
	}
	if len(memberships) == 0 {
		return []domain.TransactionSplit{{UserID: txn.CreatedBy, AmountMinor: txn.AmountMinor}}, nil
	}

	participants := make([]ledger.Participant, len(memberships))
	for i, m := range memberships {
		participants[i] = ledger.Participant{UserID: m.UserID, Weight: m.ShareWeight}
	}
	shares, err := ledger.SplitAmount(txn.AmountMinor, participants)
	if err != nil {
		return nil, err
	}

	splits := make([]domain.TransactionSplit, len(shares))
	for i, share := range shares {
		splits[i] = domain.TransactionSplit{UserID: share.UserID, AmountMinor: share.AmountMinor}
	}
	return splits, nil
}

// ListTransactions retrieves a workspace's transactions, most recent first.
func (s *transactionService) ListTransactions(ctx context.Context, requestingUserID, workspaceID int64, limit, offset int) ([]domain.Transaction, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.transactionRepo.ListTransactionsByWorkspace(ctx, workspaceID, limit, offset)
}
