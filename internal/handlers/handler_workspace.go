package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// workspaceHandler handles HTTP requests related to workspaces and memberships.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{workspaceService: ws}
}

// registerWorkspaceRoutes registers workspace routes plus the nested
// transaction, category, wallet and reporting routes.
func registerWorkspaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWorkspaceHandler(services.Workspace)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listMyWorkspaces)
		workspaces.GET("/:id/members", h.listMembers)
		workspaces.POST("/:id/members", h.addMember)
		workspaces.PATCH("/:id/members/:userID/weight", h.updateShareWeight)

		registerTransactionRoutes(workspaces, services.Transaction, services.Category)
		registerWalletRoutes(workspaces, services.Wallet)
		registerReportingRoutes(workspaces, services.Reporting)
	}
}

// workspaceIDParam parses the :id path segment. A zero return means the
// handler already wrote the error response.
func workspaceIDParam(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid workspace id"})
		return 0
	}
	return id
}

// createWorkspace godoc
// @Summary Create a workspace
// @Description Creates a workspace with the caller as its admin member.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req.Name, req.DefaultCurrency, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create workspace")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// listMyWorkspaces godoc
// @Summary List the caller's workspaces
// @Tags workspaces
// @Produce json
// @Success 200 {array} dto.WorkspaceResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listMyWorkspaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	workspaces, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list workspaces")
		return
	}

	out := make([]dto.WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		out[i] = dto.ToWorkspaceResponse(&workspaces[i])
	}
	c.JSON(http.StatusOK, out)
}

// listMembers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/members [get]
func (h *workspaceHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	workspaceID := workspaceIDParam(c)
	if workspaceID == 0 {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// addMember godoc
// @Summary Add a member to a workspace
// @Description Adds a user to the workspace. Admin only. Share weight defaults to 1.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param member body dto.AddMemberRequest true "Member details"
// @Success 204 "Member added"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/members [post]
func (h *workspaceHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	workspaceID := workspaceIDParam(c)
	if workspaceID == 0 {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	var weight int64
	if req.ShareWeight != nil {
		weight = *req.ShareWeight
	}

	err := h.workspaceService.AddMember(c.Request.Context(), userID, workspaceID, req.UserID, domain.WorkspaceRole(req.Role), weight)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateShareWeight godoc
// @Summary Change a member's split share weight
// @Tags workspaces
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param userID path int true "Target user ID"
// @Param weight body dto.UpdateShareWeightRequest true "New weight"
// @Success 204 "Weight updated"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/members/{userID}/weight [patch]
func (h *workspaceHandler) updateShareWeight(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	workspaceID := workspaceIDParam(c)
	if workspaceID == 0 {
		return
	}
	targetUserID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil || targetUserID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	var req dto.UpdateShareWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.workspaceService.UpdateShareWeight(c.Request.Context(), userID, workspaceID, targetUserID, req.ShareWeight); err != nil {
		respondServiceError(c, logger, err, "Failed to update share weight")
		return
	}
	c.Status(http.StatusNoContent)
}
