package domain

import "time"

// WorkspaceRole is a member's role inside a workspace.
type WorkspaceRole string

const (
	RoleAdmin  WorkspaceRole = "ADMIN"
	RoleMember WorkspaceRole = "MEMBER"
)

// Workspace is the multi-tenant unit of the shared ledger: a household or
// team whose members share wallets and transactions.
type Workspace struct {
	WorkspaceID     int64  `json:"workspaceID"`
	Name            string `json:"name"`
	DefaultCurrency string `json:"defaultCurrency"`
	CreatedBy       int64  `json:"createdBy"`
	AuditFields
}

// Membership links a user to a workspace. ShareWeight drives proportional
// expense splitting; weight 1 for everyone means an equal split.
type Membership struct {
	WorkspaceID int64         `json:"workspaceID"`
	UserID      int64         `json:"userID"`
	Role        WorkspaceRole `json:"role"`
	ShareWeight int64         `json:"shareWeight"`
	JoinedAt    time.Time     `json:"joinedAt"`
}
