package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
	"github.com/prosperahq/prospera_wallet_app/internal/middleware"
	"github.com/prosperahq/prospera_wallet_app/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes, rate limited
// per client IP.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	h := NewAuthHandler(authService)

	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	rate, _ := limiter.NewRateFromFormatted(fmt.Sprintf("%d-M", perMinute))
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/telegram", limitMiddleware, h.LoginTelegram)
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
	}
}

// LoginTelegram godoc
// @Summary Login with Telegram WebApp init data
// @Description Validates the signed init data from the Telegram client and returns a JWT for the bound user, creating the account on first contact.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.TelegramLoginRequest true "Raw init data"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/telegram [post]
func (h *AuthHandler) LoginTelegram(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	token, user, err := h.authService.LoginWithTelegram(c.Request.Context(), req.InitData)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected Telegram init data", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid init data"})
			return
		}
		respondServiceError(c, logger, err, "Failed to log in")
		return
	}

	logger.Info("Telegram login", slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, User: dto.ToUserResponse(user)})
}

// Register godoc
// @Summary Register a password user
// @Description Creates a username/password account and returns a JWT for it.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register")
		return
	}

	logger.Info("User registered", slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.LoginResponse{AccessToken: token, User: dto.ToUserResponse(user)})
}

// Login godoc
// @Summary Login with username and password
// @Description Authenticates an API user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	token, user, err := h.authService.LoginWithPassword(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown user or wrong password"})
			return
		}
		respondServiceError(c, logger, err, "Failed to log in")
		return
	}

	logger.Info("Password login", slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, User: dto.ToUserResponse(user)})
}
