package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/ai"
	googleauth "github.com/Tejas-Atram/AI-Resume-Builder/internal/auth"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/resumes"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/config"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/metrics"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/server/middleware"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/users"
)

// RouterDeps carries everything NewRouter needs to assemble the HTTP surface.
type RouterDeps struct {
	Config        config.Config
	AIHandler     *ai.Handler
	ResumeHandler *resumes.Handler
	UserHandler   *users.Handler
	GoogleAuth    *googleauth.GoogleService
	// LocalFilesDir, when set, is served under /files for locally stored
	// uploads. Empty when S3 serves assets directly.
	LocalFilesDir string
}

// NewRouter builds the gin engine with the full middleware chain and all
// route groups.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/metrics", metrics.Handler())

	if deps.LocalFilesDir != "" {
		router.Static("/files", deps.LocalFilesDir)
	}

	api := router.Group("/api")

	// No token required: registration, login, and the OAuth dance.
	public := api.Group("")
	deps.UserHandler.RegisterPublicRoutes(public)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(public)
	}

	// Public resume reads resolve the caller when a token is present so
	// owners can read their own private resumes through the same route.
	optional := api.Group("", middleware.OptionalAuth())
	deps.ResumeHandler.RegisterPublicRoutes(optional)

	authed := api.Group("", middleware.Auth())
	deps.UserHandler.RegisterRoutes(authed)
	deps.ResumeHandler.RegisterRoutes(authed)
	deps.ResumeHandler.RegisterUserRoutes(authed)

	// AI routes get a token bucket on top of the daily quota so a burst
	// cannot drain the day's allowance in seconds.
	aiGroup := authed.Group("", middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AI": {Rate: 0.5, Burst: 5},
		},
		DefaultGroup: "AI",
	}))
	deps.AIHandler.RegisterRoutes(aiGroup)

	return router
}
