package domain

// Category is a per-workspace expense category.
type Category struct {
	CategoryID  int64  `json:"categoryID"`
	WorkspaceID int64  `json:"workspaceID"`
	Name        string `json:"name"`
	AuditFields
}
