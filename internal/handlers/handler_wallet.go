package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// walletHandler handles wallet and transfer requests.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers wallet routes nested under /workspaces/:id
// plus the top-level transfer route.
func registerWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade) {
	h := newWalletHandler(ws)

	rg.POST("/:id/wallets", h.createWallet)
	rg.GET("/:id/wallets", h.listWallets)
}

// registerTransferRoute registers the wallet-to-wallet transfer endpoint.
func registerTransferRoute(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade) {
	h := newWalletHandler(ws)
	rg.POST("/wallets/transfer", h.transfer)
}

// createWallet godoc
// @Summary Create a wallet
// @Description Creates a shared or personal wallet in the workspace. Personal wallets are owned by the caller.
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path int true "Workspace ID"
// @Param wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
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

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), userID, workspaceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create wallet")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// listWallets godoc
// @Summary List workspace wallets
// @Tags wallets
// @Produce json
// @Param id path int true "Workspace ID"
// @Success 200 {array} dto.WalletResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{id}/wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
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

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list wallets")
		return
	}

	out := make([]dto.WalletResponse, len(wallets))
	for i := range wallets {
		out[i] = dto.ToWalletResponse(&wallets[i])
	}
	c.JSON(http.StatusOK, out)
}

// transfer godoc
// @Summary Transfer between wallets
// @Description Moves money between two same-currency wallets under optimistic versioning. The destination is a wallet id, or a user id that resolves to that user's personal wallet. A version conflict returns 409 and the client should retry.
// @Tags wallets
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallets/transfer [post]
func (h *walletHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	transfer, err := h.walletService.Transfer(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to transfer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}
