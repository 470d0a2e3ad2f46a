package repositories

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for expense categories.
type CategoryRepositoryFacade interface {
	// SaveCategory persists a new category and returns it with its assigned id.
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)

	// FindCategoryByID retrieves a category by its id.
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)

	// ListCategoriesByWorkspace retrieves a workspace's categories ordered by name.
	ListCategoriesByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Category, error)
}
