package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// transactionHandler handles workspace transaction and category requests.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	categoryService    portssvc.CategorySvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, cs portssvc.CategorySvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, categoryService: cs}
}

// registerTransactionRoutes registers transaction and category routes nested
// under /workspaces/:id.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, cs portssvc.CategorySvcFacade) {
	h := newTransactionHandler(ts, cs)

	rg.POST("/:id/transactions", h.createTransaction)
	rg.GET("/:id/transactions", h.listTransactions)
	rg.POST("/:id/categories", h.createCategory)
	rg.GET("/:id/categories", h.listCategories)
}

// createTransaction godoc
// @Summary Record a workspace transaction
// @Description Records an expense or income. Expense amounts are split across members by share weight; the splits are returned with the transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
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

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	txn, splits, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, workspaceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, splits))
}

// listTransactions godoc
// @Summary List workspace transactions
// @Tags transactions
// @Produce json
// @Param id path int true "Workspace ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
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

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), userID, workspaceID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	out := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		out[i] = dto.ToTransactionResponse(&txns[i], nil)
	}
	c.JSON(http.StatusOK, out)
}

// createCategory godoc
// @Summary Create an expense category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/categories [post]
func (h *transactionHandler) createCategory(c *gin.Context) {
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

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, workspaceID, req.Name)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List workspace categories
// @Tags categories
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {array} dto.CategoryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/categories [get]
func (h *transactionHandler) listCategories(c *gin.Context) {
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

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list categories")
		return
	}

	out := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		out[i] = dto.ToCategoryResponse(&categories[i])
	}
	c.JSON(http.StatusOK, out)
}
