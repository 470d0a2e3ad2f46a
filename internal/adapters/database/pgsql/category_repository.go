package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCategoryRepository creates a new repository for category data.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (workspace_id, name, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING category_id;
	`
	err := r.pool.QueryRow(ctx, query,
		category.WorkspaceID,
		category.Name,
		category.CreatedAt,
		category.LastUpdatedAt,
	).Scan(&category.CategoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	query := `
		SELECT category_id, workspace_id, name, created_at, last_updated_at
		FROM categories
		WHERE category_id = $1;
	`
	var c domain.Category
	err := r.pool.QueryRow(ctx, query, categoryID).Scan(&c.CategoryID, &c.WorkspaceID, &c.Name, &c.CreatedAt, &c.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategoriesByWorkspace(ctx context.Context, workspaceID int64) ([]domain.Category, error) {
	query := `
		SELECT category_id, workspace_id, name, created_at, last_updated_at
		FROM categories
		WHERE workspace_id = $1
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.CategoryID, &c.WorkspaceID, &c.Name, &c.CreatedAt, &c.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}
	return categories, nil
}
