package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/aduvernay/staffing-api/internal/transport/http/handler"
	"github.com/aduvernay/staffing-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// Options selects the deployment variant. RequireAuth=false serves every
// route without the bearer gate; the route table itself stays the same.
type Options struct {
	RequireAuth bool
}

type route struct {
	method      string
	path        string
	handler     gin.HandlerFunc
	requireAuth bool
}

// NewRouter wires the fixed per-request pipeline: recovery → request id →
// security headers → request log → metrics → rate limit, then the auth gate
// on routes that require it. Field validation runs inside each handler.
func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	staffingHandler *handler.StaffingHandler,
	limiter *middleware.RateLimiter,
	tokens middleware.TokenVerifier,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(limiter.Middleware())

	authMW := middleware.Auth(tokens)

	routes := []route{
		{http.MethodPost, "/api/register", authHandler.Register, false},
		{http.MethodPost, "/api/login", authHandler.Login, false},
		{http.MethodGet, "/api/tasks", staffingHandler.Tasks, true},
		{http.MethodGet, "/api/persons", staffingHandler.Persons, true},
		{http.MethodPost, "/api/assign-task", staffingHandler.AssignTask, true},
		{http.MethodPost, "/api/update-time", staffingHandler.UpdateTime, true},
	}

	for _, rt := range routes {
		if rt.requireAuth && opts.RequireAuth {
			r.Handle(rt.method, rt.path, authMW, rt.handler)
		} else {
			r.Handle(rt.method, rt.path, rt.handler)
		}
	}

	return r
}
