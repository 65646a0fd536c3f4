package delivery

import (
	"time"

	"adrec/internal/delivery/middleware"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(60 * time.Second))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		v1.GET("/recommendations", r.handlers.GetRecommendations)

		budget := v1.Group("/budget")
		{
			budget.GET("", r.handlers.GetBudgetRecommendation)
			budget.GET("/compare", r.handlers.CompareBudgets)
		}

		// Catalog endpoints over the loaded snapshot
		v1.GET("/keys", r.handlers.ListKeys)
		v1.GET("/industries", r.handlers.ListIndustries)
		v1.GET("/industries/roles", r.handlers.ListRolesForIndustry)
		v1.GET("/summary", r.handlers.GetSummary)

		v1.POST("/rebuild", r.handlers.Rebuild)
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
