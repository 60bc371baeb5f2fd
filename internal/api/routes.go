package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"folio/internal/api/middleware"
	"folio/internal/auth"
	"folio/internal/events"
	"folio/internal/portfolio"
)

// Deps are the collaborators RegisterRoutes wires into handlers. Redis and
// Storage may be nil; the features that need them are then left out.
type Deps struct {
	Site           *portfolio.Site
	Auth           *auth.AuthService
	Redis          redisRateCounter
	Subscriber     events.Subscriber
	Storage        assetStorage
	Logger         *slog.Logger
	ClamdAddr      string
	AllowedOrigins []string
	MaxUploadBytes int64
	LoginRateLimit int
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。读取公开，写入需要访问令牌。
func RegisterRoutes(router *gin.Engine, deps Deps) {
	authMiddleware := middleware.AuthMiddleware(deps.Auth)
	portfolioHandler := NewPortfolioHandler(deps.Site)
	authHandler := NewAuthHandler(deps.Auth, deps.Redis, deps.Logger, deps.LoginRateLimit)

	v1 := router.Group("/v1")
	protected := v1.Group("")
	protected.Use(authMiddleware)

	v1.POST("/auth/login", authHandler.Login)

	v1.GET("/portfolio", portfolioHandler.GetPortfolio)
	v1.GET("/achievements", portfolioHandler.GetAchievements)
	v1.GET("/contact", portfolioHandler.GetContact)

	v1.GET("/hero", portfolioHandler.GetHero)
	protected.PUT("/hero", portfolioHandler.PutHero)
	protected.POST("/hero/reset", portfolioHandler.ResetHero)

	v1.GET("/about", portfolioHandler.GetAbout)
	protected.PUT("/about", portfolioHandler.PutAbout)
	protected.POST("/about/reset", portfolioHandler.ResetAbout)

	NewListHandler(deps.Site.Experience, portfolio.ExperienceForm.Record).Register(v1, protected)
	NewListHandler(deps.Site.Education, portfolio.EducationForm.Record).Register(v1, protected)
	NewListHandler(deps.Site.Projects, portfolio.ProjectForm.Record).Register(v1, protected)
	NewListHandler(deps.Site.Skills, portfolio.SkillGroupForm.Record).Register(v1, protected)

	if deps.Subscriber != nil {
		wsHandler := NewWsHandler(deps.Subscriber, deps.Logger, deps.AllowedOrigins)
		v1.GET("/ws", wsHandler.HandleConnection)
	}

	if deps.Storage != nil {
		assetHandler := NewAssetHandler(deps.Storage, deps.Logger, deps.ClamdAddr, deps.MaxUploadBytes)
		assets := protected.Group("/assets")
		assets.POST("/upload", assetHandler.UploadAsset)
		assets.GET("", assetHandler.ListAssets)
		assets.GET("/view", assetHandler.GetAssetURL)
	}
}
