package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// exchangeRateHandler handles stored exchange rate requests.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers the rate storage routes.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rs portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rs)

	rates := rg.Group("/rates")
	{
		rates.PUT("", h.upsertRate)
		rates.GET("", h.listRates)
	}
}

// upsertRate godoc
// @Summary Store an exchange rate
// @Description Stores a rate for a currency pair. Rates are recorded for display and export only.
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.UpsertRateRequest true "Rate details"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates [put]
func (h *exchangeRateHandler) upsertRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.SaveRate(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to store rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

// listRates godoc
// @Summary List stored exchange rates
// @Tags rates
// @Produce json
// @Success 200 {array} dto.RateResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list rates")
		return
	}

	out := make([]dto.RateResponse, len(rates))
	for i := range rates {
		out[i] = dto.ToRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, out)
}
