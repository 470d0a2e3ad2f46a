package services

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// FindWorkspaceByID retrieves a specific workspace by its id.
	FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves workspaces the user belongs to.
	ListUserWorkspaces(ctx context.Context, userID int64) ([]domain.Workspace, error)

	// ListMembers retrieves a workspace's memberships ordered by user id.
	// The requesting user must be a member.
	ListMembers(ctx context.Context, requestingUserID, workspaceID int64) ([]domain.Membership, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace with the creator as admin.
	CreateWorkspace(ctx context.Context, name, defaultCurrency string, creatorUserID int64) (*domain.Workspace, error)

	// AddMember adds a user to a workspace. Only admins may add others.
	AddMember(ctx context.Context, requestingUserID, workspaceID, targetUserID int64, role domain.WorkspaceRole, shareWeight int64) error

	// UpdateShareWeight changes a member's split weight. Only admins may do this.
	UpdateShareWeight(ctx context.Context, requestingUserID, workspaceID, targetUserID, shareWeight int64) error
}

// WorkspaceAuthorizerSvc defines operations for workspace authorization
type WorkspaceAuthorizerSvc interface {
	// EnsureMember verifies the user belongs to the workspace, returning the
	// membership or apperrors.ErrForbidden.
	EnsureMember(ctx context.Context, workspaceID, userID int64) (*domain.Membership, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces.
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceAuthorizerSvc
}
