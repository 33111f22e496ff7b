package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"proposal-analyzer/internal/analyses"
	"proposal-analyzer/internal/chat"
	"proposal-analyzer/internal/services/health"
	"proposal-analyzer/internal/shared/config"
	"proposal-analyzer/internal/shared/metrics"
	"proposal-analyzer/internal/shared/server/middleware"
	"proposal-analyzer/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router exposes.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	ChatHandler     *chat.Handler
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"status": "healthy"})
			return
		}
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     rateLimitGroup,
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 20},
			"SUBMIT":  {Rate: 2, Burst: 5},
		},
	}))
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.HasPrefix(c.FullPath(), "/api/v1/analyze-") {
		return "SUBMIT"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
