package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Prospera Wallet API v1"})
}

// telegramWebhook acknowledges update deliveries from the Telegram Bot API.
// The bot frontends drive the actual conversation through /api/v1; this
// endpoint only has to answer 200 quickly so Telegram does not retry.
func telegramWebhook(c *gin.Context) {
	_, _ = io.Copy(io.Discard, c.Request.Body)
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Webhook update acknowledged")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
