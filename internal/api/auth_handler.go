package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/api/middleware"
	"folio/internal/auth"
)

// AuthHandler 处理管理员登录。
type AuthHandler struct {
	authService *auth.AuthService
	limiter     *loginLimiter
	logger      *slog.Logger
}

// NewAuthHandler 构造认证处理器。redisClient 为空时不做登录限速。
func NewAuthHandler(authService *auth.AuthService, redisClient redisRateCounter, logger *slog.Logger, loginRateLimitPerHour int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     newLoginLimiter(redisClient, loginRateLimitPerHour),
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login 校验口令并返回访问令牌。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))

	allowed, err := h.limiter.Allow(c.Request.Context(), c.ClientIP(), req.Username)
	if err != nil {
		logger.Warn("login rate counter unavailable", slog.Any("error", err))
	}
	if !allowed {
		logger.Info("login rate limited")
		TooManyRequests(c)
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Info("login failed: invalid credentials")
			Unauthorized(c)
			return
		}
		logger.Error("login failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("editor logged in")
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.authService.AccessTokenTTL().Seconds()),
	})
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
