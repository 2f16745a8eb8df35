package handlers

import (
	"net/http"

	"github.com/SscSPs/fintrack/cmd/docs"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const apiBasePath = "/api/v1"

// RegisterRoutes mounts health, login, the authenticated statement API and,
// outside production, the swagger UI.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", health)

	registerAuthRoutes(r, cfg, services.Auth)

	api := r.Group(apiBasePath, middleware.AuthMiddleware(cfg.JWTSecret))
	registerUploadRoutes(api, services.Ingestion, cfg.MaxUploadBytes)
	registerTransactionRoutes(api, services.Ingestion, services.Reporting)
	registerCategoryRoutes(api, services.Category)
	registerReportingRoutes(api, services.Reporting)

	if !cfg.IsProduction {
		docs.SwaggerInfo.BasePath = apiBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
