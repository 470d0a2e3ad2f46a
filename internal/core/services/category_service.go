package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	authorizer   portssvc.WorkspaceAuthorizerSvc
}

// NewCategoryService creates a new category service with the provided dependencies
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo, authorizer: authorizer}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates an expense category in a workspace
func (s *categoryService) CreateCategory(ctx context.Context, requestingUserID, workspaceID int64, name string) (*domain.Category, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	category := domain.Category{
		WorkspaceID: workspaceID,
		Name:        name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	saved, err := s.categoryRepo.SaveCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to save category",
			slog.Int64("workspace_id", workspaceID),
			slog.String("name", name))
		return nil, err
	}
	return saved, nil
}

// ListCategories retrieves a workspace's categories ordered by name
func (s *categoryService) ListCategories(ctx context.Context, requestingUserID, workspaceID int64) ([]domain.Category, error) {
	if _, err := s.authorizer.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListCategoriesByWorkspace(ctx, workspaceID)
}
