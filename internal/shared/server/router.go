package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/certifications"
	"candidate-backend/internal/education"
	"candidate-backend/internal/experiences"
	"candidate-backend/internal/projects"
	"candidate-backend/internal/resumes"
	"candidate-backend/internal/shared/config"
	"candidate-backend/internal/shared/metrics"
	"candidate-backend/internal/shared/server/middleware"
	"candidate-backend/internal/shared/server/respond"
	"candidate-backend/internal/skills"
)

const uploadRateGroup = "UPLOAD"

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	Resumes        *resumes.Handler
	Experiences    *experiences.Handler
	Education      *education.Handler
	Skills         *skills.Handler
	Projects       *projects.Handler
	Certifications *certifications.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.AllowedHosts(cfg.AllowedHosts),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				uploadRateGroup: {Rate: 2, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.Request.URL.Path, "/api/candidates/upload") {
					return uploadRateGroup
				}
				return ""
			},
		}),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	if cfg.ObjectStoreType == "local" {
		r.Static("/media", cfg.MediaRoot)
	}

	api := r.Group("/api")
	deps.Resumes.RegisterRoutes(api)
	deps.Experiences.RegisterRoutes(api)
	deps.Education.RegisterRoutes(api)
	deps.Skills.RegisterRoutes(api)
	deps.Projects.RegisterRoutes(api)
	deps.Certifications.RegisterRoutes(api)

	return r
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
