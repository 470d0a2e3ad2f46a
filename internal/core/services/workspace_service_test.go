package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/core/services"
)

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockWorkspaceRepo *MockWorkspaceRepository
	service           portssvc.WorkspaceSvcFacade
}

func (s *WorkspaceServiceTestSuite) SetupTest() {
	s.mockWorkspaceRepo = new(MockWorkspaceRepository)
	s.service = services.NewWorkspaceService(s.mockWorkspaceRepo)
}

func (s *WorkspaceServiceTestSuite) expectRole(workspaceID, userID int64, role domain.WorkspaceRole) {
	s.mockWorkspaceRepo.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(&domain.Membership{WorkspaceID: workspaceID, UserID: userID, Role: role, ShareWeight: 1}, nil)
}

func (s *WorkspaceServiceTestSuite) TestCreateWorkspace_CreatorBecomesAdmin() {
	ctx := context.Background()
	s.mockWorkspaceRepo.On("SaveWorkspace", mock.Anything, mock.MatchedBy(func(w domain.Workspace) bool {
		return w.Name == "Flat 4B" && w.DefaultCurrency == "EUR" && w.CreatedBy == 1
	})).Return(&domain.Workspace{WorkspaceID: 7, Name: "Flat 4B", DefaultCurrency: "EUR", CreatedBy: 1}, nil)
	s.mockWorkspaceRepo.On("AddMembership", mock.Anything, mock.MatchedBy(func(m domain.Membership) bool {
		return m.WorkspaceID == 7 && m.UserID == 1 && m.Role == domain.RoleAdmin && m.ShareWeight == 1
	})).Return(nil)

	workspace, err := s.service.CreateWorkspace(ctx, "Flat 4B", "eur", 1)

	s.Require().NoError(err)
	s.Equal(int64(7), workspace.WorkspaceID)
	s.mockWorkspaceRepo.AssertExpectations(s.T())
}

func (s *WorkspaceServiceTestSuite) TestAddMember_DefaultsRoleAndWeight() {
	ctx := context.Background()
	s.expectRole(7, 1, domain.RoleAdmin)
	s.mockWorkspaceRepo.On("AddMembership", mock.Anything, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == 2 && m.Role == domain.RoleMember && m.ShareWeight == 1
	})).Return(nil)

	err := s.service.AddMember(ctx, 1, 7, 2, "", 0)

	s.Require().NoError(err)
	s.mockWorkspaceRepo.AssertExpectations(s.T())
}

func (s *WorkspaceServiceTestSuite) TestAddMember_NonAdminForbidden() {
	ctx := context.Background()
	s.expectRole(7, 2, domain.RoleMember)

	err := s.service.AddMember(ctx, 2, 7, 3, domain.RoleMember, 1)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockWorkspaceRepo.AssertNotCalled(s.T(), "AddMembership", mock.Anything, mock.Anything)
}

func (s *WorkspaceServiceTestSuite) TestAddMember_NegativeWeightRejected() {
	ctx := context.Background()
	s.expectRole(7, 1, domain.RoleAdmin)

	err := s.service.AddMember(ctx, 1, 7, 2, domain.RoleMember, -1)

	s.Require().ErrorIs(err, apperrors.ErrInvalidWeight)
	s.mockWorkspaceRepo.AssertNotCalled(s.T(), "AddMembership", mock.Anything, mock.Anything)
}

func (s *WorkspaceServiceTestSuite) TestUpdateShareWeight_AdminOnly() {
	ctx := context.Background()
	s.expectRole(7, 1, domain.RoleAdmin)
	s.mockWorkspaceRepo.On("UpdateShareWeight", mock.Anything, int64(7), int64(2), int64(3)).Return(nil)

	err := s.service.UpdateShareWeight(ctx, 1, 7, 2, 3)

	s.Require().NoError(err)
	s.mockWorkspaceRepo.AssertExpectations(s.T())
}

func (s *WorkspaceServiceTestSuite) TestUpdateShareWeight_ZeroWeightAllowed() {
	ctx := context.Background()
	s.expectRole(7, 1, domain.RoleAdmin)
	s.mockWorkspaceRepo.On("UpdateShareWeight", mock.Anything, int64(7), int64(2), int64(0)).Return(nil)

	err := s.service.UpdateShareWeight(ctx, 1, 7, 2, 0)

	s.Require().NoError(err)
}

func (s *WorkspaceServiceTestSuite) TestEnsureMember_UnknownWorkspaceForbidden() {
	ctx := context.Background()
	s.mockWorkspaceRepo.On("FindMembership", mock.Anything, int64(404), int64(1)).
		Return(nil, apperrors.ErrNotFound)

	authorizer := s.service.(portssvc.WorkspaceAuthorizerSvc)
	_, err := authorizer.EnsureMember(ctx, 404, 1)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestWorkspaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}
