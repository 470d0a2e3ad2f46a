package services

import (
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Workspace service first; most other services authorize through it.
	container.Workspace = NewWorkspaceService(repos.WorkspaceRepo)
	authorizer := container.Workspace.(portssvc.WorkspaceAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(container.User, cfg.BotToken, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	container.Wallet = NewWalletService(repos.WalletRepo, repos.AuditRepo, authorizer, cfg.AllowNegativeBalances)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.WorkspaceRepo, repos.CategoryRepo, authorizer)
	container.Category = NewCategoryService(repos.CategoryRepo, authorizer)
	container.Group = NewGroupService(repos.GroupRepo, repos.UserRepo, repos.AuditRepo)
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.UserRepo, authorizer)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	return container
}
