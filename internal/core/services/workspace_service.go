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
)

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryFacade) portssvc.WorkspaceSvcFacade {
	return &workspaceService{workspaceRepo: workspaceRepo}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// FindWorkspaceByID retrieves a workspace by its id
func (s *workspaceService) FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace by ID", slog.Int64("workspace_id", workspaceID))
		}
		return nil, err
	}
	return workspace, nil
}

// ListUserWorkspaces retrieves all workspaces a user belongs to
func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID int64) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user", slog.Int64("user_id", userID))
		return nil, err
	}
	if workspaces == nil {
		return []domain.Workspace{}, nil
	}
	return workspaces, nil
}

// ListMembers retrieves a workspace's memberships ordered by user id
func (s *workspaceService) ListMembers(ctx context.Context, requestingUserID, workspaceID int64) ([]domain.Membership, error) {
	if _, err := s.EnsureMember(ctx, workspaceID, requestingUserID); err != nil {
		return nil, err
	}
	memberships, err := s.workspaceRepo.ListMemberships(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace members", slog.Int64("workspace_id", workspaceID))
		return nil, err
	}
	return memberships, nil
}

// CreateWorkspace creates a new workspace with the creator as admin
func (s *workspaceService) CreateWorkspace(ctx context.Context, name, defaultCurrency string, creatorUserID int64) (*domain.Workspace, error) {
	now := time.Now()
	workspace := domain.Workspace{
		Name:            name,
		DefaultCurrency: ledger.NormalizeCurrency(defaultCurrency),
		CreatedBy:       creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.workspaceRepo.SaveWorkspace(ctx, workspace)
	if err != nil {
		s.LogError(ctx, err, "Failed to save workspace", slog.String("name", name))
		return nil, err
	}

	membership := domain.Membership{
		WorkspaceID: saved.WorkspaceID,
		UserID:      creatorUserID,
		Role:        domain.RoleAdmin,
		ShareWeight: 1,
		JoinedAt:    now,
	}
	if err := s.workspaceRepo.AddMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as admin to new workspace",
			slog.Int64("workspace_id", saved.WorkspaceID),
			slog.Int64("user_id", creatorUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Workspace created",
		slog.Int64("workspace_id", saved.WorkspaceID),
		slog.Int64("creator_id", creatorUserID))
	return saved, nil
}

// AddMember adds a user to a workspace
func (s *workspaceService) AddMember(ctx context.Context, requestingUserID, workspaceID, targetUserID int64, role domain.WorkspaceRole, shareWeight int64) error {
	membership, err := s.EnsureMember(ctx, workspaceID, requestingUserID)
	if err != nil {
		return err
	}
	if membership.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: only admins may add members", apperrors.ErrForbidden)
	}
	if shareWeight < 0 {
		return fmt.Errorf("%w: share weight must not be negative", apperrors.ErrInvalidWeight)
	}
	if role == "" {
		role = domain.RoleMember
	}
	if shareWeight == 0 {
		shareWeight = 1
	}

	err = s.workspaceRepo.AddMembership(ctx, domain.Membership{
		WorkspaceID: workspaceID,
		UserID:      targetUserID,
		Role:        role,
		ShareWeight: shareWeight,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add user to workspace",
			slog.Int64("target_user_id", targetUserID),
			slog.Int64("workspace_id", workspaceID))
		return err
	}

	s.LogInfo(ctx, "User added to workspace",
		slog.Int64("target_user_id", targetUserID),
		slog.Int64("workspace_id", workspaceID),
		slog.String("role", string(role)))
	return nil
}

// UpdateShareWeight changes a member's split weight
func (s *workspaceService) UpdateShareWeight(ctx context.Context, requestingUserID, workspaceID, targetUserID, shareWeight int64) error {
	membership, err := s.EnsureMember(ctx, workspaceID, requestingUserID)
	if err != nil {
		return err
	}
	if membership.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: only admins may change share weights", apperrors.ErrForbidden)
	}
	if shareWeight < 0 {
		return fmt.Errorf("%w: share weight must not be negative", apperrors.ErrInvalidWeight)
	}

	if err := s.workspaceRepo.UpdateShareWeight(ctx, workspaceID, targetUserID, shareWeight); err != nil {
		s.LogError(ctx, err, "Failed to update share weight",
			slog.Int64("target_user_id", targetUserID),
			slog.Int64("workspace_id", workspaceID))
		return err
	}
	return nil
}

// EnsureMember verifies the user belongs to the workspace
func (s *workspaceService) EnsureMember(ctx context.Context, workspaceID, userID int64) (*domain.Membership, error) {
	membership, err := s.workspaceRepo.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: not a workspace member", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to check workspace membership",
			slog.Int64("workspace_id", workspaceID),
			slog.Int64("user_id", userID))
		return nil, err
	}
	return membership, nil
}
