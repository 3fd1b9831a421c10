package routes

import (
	"VCS_Basic_Web_App/internal/web-server/api/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func AddApiRoutes(r *gin.Engine, h handler.ApiHandler) {
	apiRoutes := r.Group("/api")
	apiRoutes.GET("/health", h.Health())
	apiRoutes.GET("/data", h.GetData())
	apiRoutes.POST("/echo", h.Echo())
}

func AddMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// AddStaticRoutes must be registered last: it owns every request no other route matched.
func AddStaticRoutes(r *gin.Engine, h handler.StaticHandler) {
	r.NoRoute(h.NoRoute())
}
