package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-reviewer/internal/analyses"
	"resume-reviewer/internal/documents"
	"resume-reviewer/internal/insights"
	"resume-reviewer/internal/roles"
	"resume-reviewer/internal/services/health"
	"resume-reviewer/internal/shared/config"
	"resume-reviewer/internal/shared/metrics"
	"resume-reviewer/internal/shared/server/middleware"
	"resume-reviewer/internal/shared/server/respond"
)

const (
	rateGroupAnalyze = "ANALYZE"
	rateGroupChat    = "CHAT"
)

// RouterDeps holds the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
	RolesHandler    *roles.Handler
	ChatHandler     *insights.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:  deps.RateLimiter,
			GroupFor: rateGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":        {Rate: 20, Burst: 40},
				rateGroupAnalyze: {Rate: 2, Burst: 5},
				rateGroupChat:    {Rate: 1, Burst: 3},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	api.GET("/health", func(c *gin.Context) {
		ok, checks := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	})
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.RolesHandler != nil {
		deps.RolesHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// rateGroup puts the expensive POST endpoints into their own buckets.
func rateGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	switch {
	case strings.HasSuffix(path, "/analyses"), strings.HasSuffix(path, "/documents"):
		return rateGroupAnalyze
	case strings.HasSuffix(path, "/chat"):
		return rateGroupChat
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
