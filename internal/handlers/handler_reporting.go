package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// reportingHandler serves workspace balances and monthly reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes nested under /workspaces/:id.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	rg.GET("/:id/balances", h.workspaceBalances)
	rg.GET("/:id/reports/monthly", h.monthlyReport)
}

// workspaceBalances godoc
// @Summary Workspace member balances
// @Description Computes each member's per-currency net position from the workspace's expense splits, with the transfers that would settle them.
// @Tags reporting
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {object} dto.WorkspaceBalancesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/balances [get]
func (h *reportingHandler) workspaceBalances(c *gin.Context) {
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

	balances, err := h.reportingService.WorkspaceBalances(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}

// monthlyReport godoc
// @Summary Current month's expense report
// @Description Sums this month's expenses grouped by category and currency, largest first.
// @Tags reporting
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {object} dto.MonthlyReportResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/reports/monthly [get]
func (h *reportingHandler) monthlyReport(c *gin.Context) {
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

	report, err := h.reportingService.MonthlyExpenseReport(c.Request.Context(), userID, workspaceID, time.Now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build monthly report")
		return
	}
	c.JSON(http.StatusOK, report)
}
