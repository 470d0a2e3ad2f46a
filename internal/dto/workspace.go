package dto

import (
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// CreateWorkspaceRequest creates a new workspace, with the caller as admin.
type CreateWorkspaceRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	DefaultCurrency string `json:"defaultCurrency" binding:"required,len=3"`
}

// AddMemberRequest adds a user to a workspace.
type AddMemberRequest struct {
	UserID      int64  `json:"userID" binding:"required"`
	Role        string `json:"role" binding:"omitempty,oneof=ADMIN MEMBER"`
	ShareWeight *int64 `json:"shareWeight,omitempty"`
}

// UpdateShareWeightRequest changes a member's split share weight.
type UpdateShareWeightRequest struct {
	ShareWeight int64 `json:"shareWeight" binding:"min=0"`
}

// WorkspaceResponse is the API representation of a workspace.
type WorkspaceResponse struct {
	WorkspaceID     int64     `json:"workspaceID"`
	Name            string    `json:"name"`
	DefaultCurrency string    `json:"defaultCurrency"`
	CreatedBy       int64     `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MemberResponse is the API representation of a workspace membership.
type MemberResponse struct {
	UserID      int64     `json:"userID"`
	Role        string    `json:"role"`
	ShareWeight int64     `json:"shareWeight"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ToWorkspaceResponse maps a domain workspace to its API representation.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:     w.WorkspaceID,
		Name:            w.Name,
		DefaultCurrency: w.DefaultCurrency,
		CreatedBy:       w.CreatedBy,
		CreatedAt:       w.CreatedAt,
	}
}

// ToMemberResponses maps memberships to their API representation.
func ToMemberResponses(memberships []domain.Membership) []MemberResponse {
	out := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		out[i] = MemberResponse{
			UserID:      m.UserID,
			Role:        string(m.Role),
			ShareWeight: m.ShareWeight,
			JoinedAt:    m.JoinedAt,
		}
	}
	return out
}
