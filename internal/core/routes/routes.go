package routes

import (
	"os"
	"time"

	"github.com/reshxs/pocket-storage-backend/internal/core/config"
	"github.com/reshxs/pocket-storage-backend/internal/core/container"
	"github.com/reshxs/pocket-storage-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	WebPath    = "/api/v1/web/jsonrpc"
	MobilePath = "/api/v1/mobile/jsonrpc"
)

func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.RequestLogger(logger),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
	)

	return router
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}

	return corsCfg
}

func RegisterRPCRoutes(router *gin.Engine, container *container.Container) {
	router.POST(WebPath, container.WebEndpoint.Handle)
	router.POST(MobilePath, container.MobileEndpoint.Handle)
}

func RegisterUtilityRoutes(router *gin.Engine, health *middleware.HealthChecker, logger *zap.Logger) {
	router.GET("/health", health.Handler())

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
		logger.Info("Route /openapi.html registered", zap.String("file", openapiFilePath))
	}
}
