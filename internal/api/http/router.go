package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"worktime/internal/api"
	"worktime/internal/config"
)

// RouterDeps carries what the HTTP surface needs
type RouterDeps struct {
	API     api.BusinessAPI
	Config  *config.Config
	Logger  *slog.Logger
	DB      Pinger
	Version string
}

// NewRouter builds the gin engine with middleware, health checks and /api/v1
func NewRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware(dep.Logger))

	server := dep.Config.Server
	if len(server.AllowedOrigins) > 0 {
		r.Use(CORSMiddleware(server.AllowedOrigins))
	}
	if server.RateLimit > 0 {
		r.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(server.RateLimit), server.RateBurst)))
	}

	NewHealthHandler("worktime", dep.Version, dep.DB).RegisterRoutes(r)

	RegisterV1(r, NewHandler(dep.API, dep.Logger))
	return r
}

// RegisterV1 attaches the versioned routes
func RegisterV1(r *gin.Engine, h *Handler) {
	v1 := r.Group("/api/v1")

	projects := v1.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:id", h.getProject)
	projects.DELETE("/:id", h.removeProject)
	projects.POST("/:id/clock-in", h.clockIn)
	projects.POST("/:id/clock-out", h.clockOut)
	projects.POST("/:id/toggle", h.toggle)
	projects.GET("/:id/timesheet", h.timesheet)

	intervals := v1.Group("/time-intervals")
	intervals.POST("/register", h.register)
	intervals.DELETE("/:id", h.removeTime)
}
