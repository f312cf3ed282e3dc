package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/leetlens/internal/infra/config"
	"github.com/yanqian/leetlens/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, recorder *metrics.Recorder, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(logger, recorder),
		securityHeaders(),
		errorHandlingMiddleware(logger),
		corsMiddleware(cfg.HTTP.CORS),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)
	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "route not found", nil))
	})

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	api := router.Group("/api/v1")
	{
		profiles := api.Group("/profiles/:username", profileMiddleware(handler.profileSvc, handler.now))
		profiles.GET("", handler.Profile)
		profiles.GET("/summary", handler.Summary)

		api.POST("/logs", handler.CreateLog)
		api.POST("/logs/update", handler.UpdateLog)
		api.POST("/logs/scroll", handler.ScrollLog)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
