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

type PgxWorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxWorkspaceRepository creates a new repository for workspace and membership data.
func NewPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{pool: pool}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (name, default_currency, created_by, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING workspace_id;
	`
	err := r.pool.QueryRow(ctx, query,
		workspace.Name,
		workspace.DefaultCurrency,
		workspace.CreatedBy,
		workspace.CreatedAt,
		workspace.LastUpdatedAt,
	).Scan(&workspace.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}
	return &workspace, nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	query := `
		SELECT workspace_id, name, default_currency, created_by, created_at, last_updated_at
		FROM workspaces
		WHERE workspace_id = $1;
	`
	var ws domain.Workspace
	err := r.pool.QueryRow(ctx, query, workspaceID).Scan(
		&ws.WorkspaceID,
		&ws.Name,
		&ws.DefaultCurrency,
		&ws.CreatedBy,
		&ws.CreatedAt,
		&ws.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace by ID: %w", err)
	}
	return &ws, nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID int64) ([]domain.Workspace, error) {
	query := `
		SELECT w.workspace_id, w.name, w.default_currency, w.created_by, w.created_at, w.last_updated_at
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.workspace_id
		WHERE m.user_id = $1
		ORDER BY w.created_at;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces for user %d: %w", userID, err)
	}
	defer rows.Close()

	workspaces := []domain.Workspace{}
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.WorkspaceID, &ws.Name, &ws.DefaultCurrency, &ws.CreatedBy, &ws.CreatedAt, &ws.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", rows.Err())
	}
	return workspaces, nil
}

func (r *PgxWorkspaceRepository) AddMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO memberships (workspace_id, user_id, role, share_weight, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		membership.WorkspaceID,
		membership.UserID,
		membership.Role,
		membership.ShareWeight,
		membership.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindMembership(ctx context.Context, workspaceID, userID int64) (*domain.Membership, error) {
	query := `
		SELECT workspace_id, user_id, role, share_weight, joined_at
		FROM memberships
		WHERE workspace_id = $1 AND user_id = $2;
	`
	var m domain.Membership
	err := r.pool.QueryRow(ctx, query, workspaceID, userID).Scan(
		&m.WorkspaceID,
		&m.UserID,
		&m.Role,
		&m.ShareWeight,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &m, nil
}

func (r *PgxWorkspaceRepository) ListMemberships(ctx context.Context, workspaceID int64) ([]domain.Membership, error) {
	// Ordered by user id so weighted splitting sees a stable participant order.
	query := `
		SELECT workspace_id, user_id, role, share_weight, joined_at
		FROM memberships
		WHERE workspace_id = $1
		ORDER BY user_id;
	`
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	memberships := []domain.Membership{}
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.WorkspaceID, &m.UserID, &m.Role, &m.ShareWeight, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", rows.Err())
	}
	return memberships, nil
}

func (r *PgxWorkspaceRepository) UpdateShareWeight(ctx context.Context, workspaceID, userID, shareWeight int64) error {
	query := `
		UPDATE memberships
		SET share_weight = $3
		WHERE workspace_id = $1 AND user_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query, workspaceID, userID, shareWeight)
	if err != nil {
		return fmt.Errorf("failed to update share weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
