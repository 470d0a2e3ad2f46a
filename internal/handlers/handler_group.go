package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// groupHandler handles expense-group requests.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func newGroupHandler(gs portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{groupService: gs}
}

// registerGroupRoutes registers all group routes.
func registerGroupRoutes(rg *gin.RouterGroup, gs portssvc.GroupSvcFacade) {
	h := newGroupHandler(gs)

	groups := rg.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.POST("/:id/expenses", h.createExpense)
		groups.GET("/:id/expenses", h.listExpenses)
		groups.GET("/:id/balances", h.groupBalances)
		groups.POST("/:id/settlements", h.createSettlements)
		groups.GET("/:id/settlements", h.listSettlements)
	}
}

func groupIDParam(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid group id"})
		return 0
	}
	return id
}

// createGroup godoc
// @Summary Create an expense group
// @Description Creates a group with the caller as admin plus the listed members.
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), userID, req.Name, req.MemberIDs)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// createExpense godoc
// @Summary Record a group expense
// @Description Records a shared expense. Without explicit splits the amount is divided equally, the leftover cent going to the first member; explicit splits must sum to the total.
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param expense body dto.CreateGroupExpenseRequest true "Expense details"
// @Success 201 {object} dto.GroupExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/expenses [post]
func (h *groupHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	groupID := groupIDParam(c)
	if groupID == 0 {
		return
	}

	var req dto.CreateGroupExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	expense, splits, err := h.groupService.CreateExpense(c.Request.Context(), userID, groupID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupExpenseResponse(expense, splits))
}

// listExpenses godoc
// @Summary List group expenses
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} dto.GroupExpenseResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/expenses [get]
func (h *groupHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	groupID := groupIDParam(c)
	if groupID == 0 {
		return
	}

	expenses, err := h.groupService.ListExpenses(c.Request.Context(), userID, groupID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list expenses")
		return
	}

	out := make([]dto.GroupExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = dto.ToGroupExpenseResponse(&expenses[i], nil)
	}
	c.JSON(http.StatusOK, out)
}

// groupBalances godoc
// @Summary Group member balances
// @Description Returns each member's signed net position (paid minus owed), positive meaning the member is owed money.
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} dto.GroupBalanceEntry
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/balances [get]
func (h *groupHandler) groupBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	groupID := groupIDParam(c)
	if groupID == 0 {
		return
	}

	balances, err := h.groupService.ComputeBalances(c.Request.Context(), userID, groupID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balances")
		return
	}

	ids := make([]int64, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]dto.GroupBalanceEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, dto.GroupBalanceEntry{UserID: id, Amount: balances[id].StringFixed(2)})
	}
	c.JSON(http.StatusOK, out)
}

// createSettlements godoc
// @Summary Settle group balances
// @Description Nets the group's balances into the minimal chain of payment instructions and persists them.
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 201 {array} dto.SettlementResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements [post]
func (h *groupHandler) createSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	groupID := groupIDParam(c)
	if groupID == 0 {
		return
	}

	settlements, err := h.groupService.CreateSettlements(c.Request.Context(), userID, groupID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponses(settlements))
}

// listSettlements godoc
// @Summary List persisted group settlements
// @Tags groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} dto.SettlementResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements [get]
func (h *groupHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	groupID := groupIDParam(c)
	if groupID == 0 {
		return
	}

	settlements, err := h.groupService.ListSettlements(c.Request.Context(), userID, groupID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list settlements")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponses(settlements))
}
