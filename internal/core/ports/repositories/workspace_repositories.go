package repositories

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its id.
	FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves all workspaces a user belongs to.
	ListWorkspacesByUserID(ctx context.Context, userID int64) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace and returns it with its assigned id.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error)
}

// WorkspaceMembershipManager defines operations for managing workspace memberships
type WorkspaceMembershipManager interface {
	// AddMembership adds a user to a workspace.
	AddMembership(ctx context.Context, membership domain.Membership) error

	// FindMembership retrieves a user's membership in a workspace, if any.
	FindMembership(ctx context.Context, workspaceID, userID int64) (*domain.Membership, error)

	// ListMemberships retrieves a workspace's memberships ordered by user id.
	ListMemberships(ctx context.Context, workspaceID int64) ([]domain.Membership, error)

	// UpdateShareWeight changes a member's split share weight.
	UpdateShareWeight(ctx context.Context, workspaceID, userID, shareWeight int64) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces.
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	WorkspaceMembershipManager
}
