package app

import (
	"VCS_Basic_Web_App/internal/web-server/api/handler"
	"VCS_Basic_Web_App/internal/web-server/api/middleware"
	"VCS_Basic_Web_App/internal/web-server/api/routes"
	"VCS_Basic_Web_App/internal/web-server/config"
	"fmt"
	"io/fs"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NewEngine wires middleware and routes. startedAt is the process start used for uptime.
func NewEngine(cfg config.ServerConfig, l *zap.Logger, registry *prometheus.Registry, assets fs.FS, startedAt time.Time) (*gin.Engine, error) {
	bodyLimit, err := cfg.BodyLimitBytes()
	if err != nil {
		return nil, fmt.Errorf("app.NewEngine: %w", err)
	}
	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("app.NewEngine: %w", err)
	}
	staticHandler, err := handler.NewStaticHandler(l, assets)
	if err != nil {
		return nil, fmt.Errorf("app.NewEngine: %w", err)
	}
	apiHandler := handler.NewApiHandler(l, cfg.Environment, startedAt)

	r := gin.New()
	// Compression wraps Recovery so a recovered panic still writes through a live gzip writer.
	r.Use(
		middleware.Compression(),
		middleware.Recovery(l, cfg.IsProduction()),
		middleware.RequestID(),
		middleware.AccessLog(l),
		metrics.Handler(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Origins()),
		middleware.BodyLimit(bodyLimit),
		middleware.ErrorHandler(cfg.IsProduction()),
	)

	routes.AddApiRoutes(r, apiHandler)
	routes.AddMetricsRoute(r, registry)
	routes.AddStaticRoutes(r, staticHandler)
	return r, nil
}
