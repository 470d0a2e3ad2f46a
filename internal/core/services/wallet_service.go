package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/core/ledger"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// walletService implements the WalletSvcFacade interface
type walletService struct {
	BaseService
	walletRepo    portsrepo.WalletRepositoryFacade
	auditRepo     portsrepo.AuditLogRepositoryFacade
	authorizer    portssvc.WorkspaceAuthorizerSvc
	allowNegative bool
}

// NewWalletService creates a new wallet service with the provided dependencies
func NewWalletService(
	walletRepo portsrepo.WalletRepositoryFacade,
	auditRepo portsrepo.AuditLogRepositoryFacade,
	authorizer portssvc.WorkspaceAuthorizerSvc,
	allowNegative bool,
) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:    walletRepo,
		auditRepo:     auditRepo,
		authorizer:    authorizer,
		allowNegative: allowNegative,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// CreateWallet creates a wallet in a workspace
func (s *walletService) CreateWallet(ctx context.Context, requestingUserID, workspaceID int64, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	wallet := domain.Wallet{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Type:        domain.WalletType(req.Type),
		Currency:    ledger.NormalizeCurrency(req.Currency),
		Balance:     decimal.Zero,
		Version:     1,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if wallet.Type == domain.WalletPersonal {
		owner := requestingUserID
		wallet.OwnerUserID = &owner
	}

	saved, err := s.walletRepo.SaveWallet(ctx, wallet)
	if err != nil {
		s.LogError(ctx, err, "Failed to save wallet",
			slog.Int64("workspace_id", workspaceID),
			slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Wallet created",
		slog.Int64("wallet_id", saved.WalletID),
		slog.String("type", string(saved.Type)))
	return saved, nil
}

// ListWallets retrieves a workspace's wallets
func (s *walletService) ListWallets(ctx context.Context, requestingUserID, workspaceID int64) ([]domain.Wallet, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}
	return s.walletRepo.ListWalletsByWorkspace(ctx, workspaceID)
}

// Transfer moves money between two wallets under optimistic versioning.
func (s *walletService) Transfer(ctx context.Context, requestingUserID int64, req dto.TransferRequest) (*domain.Transfer, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid amount", apperrors.ErrInvalidAmount, req.Amount)
	}
	amount = ledger.Quantize2(amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrInvalidAmount)
	}
	if (req.ToWalletID == 0) == (req.ToUserID == 0) {
		return nil, fmt.Errorf("%w: exactly one of toWalletID or toUserID is required", apperrors.ErrValidation)
	}
	if req.FromWalletID == req.ToWalletID {
		return nil, fmt.Errorf("%w: cannot transfer to the same wallet", apperrors.ErrValidation)
	}

	from, err := s.walletRepo.FindWalletByID(ctx, req.FromWalletID)
	if err != nil {
		return nil, err
	}
	var to *domain.Wallet
	if req.ToWalletID != 0 {
		to, err = s.walletRepo.FindWalletByID(ctx, req.ToWalletID)
	} else {
		// Recipient given by user id: pay into their personal wallet in the
		// source wallet's workspace.
		to, err = s.walletRepo.FindWalletByOwner(ctx, from.WorkspaceID, req.ToUserID)
	}
	if err != nil {
		return nil, err
	}
	if to.WalletID == from.WalletID {
		return nil, fmt.Errorf("%w: cannot transfer to the same wallet", apperrors.ErrValidation)
	}

	if _, err := s.authorizer.EnsureMember(ctx, from.WorkspaceID, requestingUserID); err != nil {
		return nil, err
	}
	if from.OwnerUserID != nil && *from.OwnerUserID != requestingUserID {
		return nil, fmt.Errorf("%w: not the wallet owner", apperrors.ErrForbidden)
	}
	if from.Currency != to.Currency {
		return nil, fmt.Errorf("%w: wallets hold different currencies", apperrors.ErrValidation)
	}
	if !s.allowNegative && from.Balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientBalance
	}

	// The repository re-checks both versions inside one DB transaction; a
	// concurrent mutation surfaces as ErrVersionConflict and the caller may
	// re-read and retry.
	transfer, err := s.walletRepo.ApplyTransfer(ctx, *from, *to, amount)
	if err != nil {
		s.LogError(ctx, err, "Failed to apply transfer",
			slog.Int64("from_wallet_id", from.WalletID),
			slog.Int64("to_wallet_id", to.WalletID))
		return nil, err
	}

	audit := domain.AuditLog{
		ActorUserID: requestingUserID,
		Action:      domain.AuditTransferExecuted,
		EntityType:  "transfer",
		EntityID:    transfer.TransferID,
		RequestID:   middleware.GetRequestIDFromCtx(ctx),
		CreatedAt:   time.Now(),
	}
	if err := s.auditRepo.SaveAuditLog(ctx, audit); err != nil {
		s.LogError(ctx, err, "Failed to append audit log", slog.Int64("transfer_id", transfer.TransferID))
	}

	s.LogInfo(ctx, "Transfer executed",
		slog.Int64("transfer_id", transfer.TransferID),
		slog.String("amount", transfer.Amount.StringFixed(2)))
	return transfer, nil
}
