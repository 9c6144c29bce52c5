package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds an API request when the config sets none.
const DefaultRequestTimeout = 25 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names the otelgin spans.
	ServiceName string

	HealthHandler         *handlers.HealthHandler
	ClassificationHandler *handlers.ClassificationHandler

	// Timeout is the deadline of each /api/v1 request. Zero disables it.
	Timeout time.Duration
}

// NewRouterConfig builds a RouterConfig from the loaded configuration.
func NewRouterConfig(
	cfg *config.Config,
	logger *slog.Logger,
	health *handlers.HealthHandler,
	classification *handlers.ClassificationHandler,
) RouterConfig {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:                logger,
		ServiceName:           cfg.App.Name,
		HealthHandler:         health,
		ClassificationHandler: classification,
		Timeout:               timeout,
	}
}

// SetupRouter installs middleware and routes on engine.
//
// Global middleware, outermost first: recovery, request ID, correlation ID,
// tracing and metrics, access log. /api/v1 adds a deadline and the request
// memo. Health routes live under /-/ and skip both.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(middleware.Recovery(), middleware.RequestID(), middleware.CorrelationID())

	if cfg.ServiceName != "" {
		engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	}

	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	api.Use(middleware.Memo())

	if cfg.ClassificationHandler != nil {
		cfg.ClassificationHandler.RegisterRoutes(api)
	}

	engine.NoRoute(func(c *gin.Context) {
		dto.RespondWithCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(dto.ErrorCodeBadRequest,
			c.Request.Method+" not allowed on "+c.Request.URL.Path).WithTraceID(dto.GetTraceID(c)))
	})
}
