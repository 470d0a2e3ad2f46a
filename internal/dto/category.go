package dto

import "github.com/prosperahq/prospera_wallet_app/internal/core/domain"

// CreateCategoryRequest creates an expense category in a workspace.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID  int64  `json:"categoryID"`
	WorkspaceID int64  `json:"workspaceID"`
	Name        string `json:"name"`
}

// ToCategoryResponse maps a domain category to its API representation.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, WorkspaceID: c.WorkspaceID, Name: c.Name}
}
