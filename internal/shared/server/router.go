package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartcv-backend/internal/shared/config"
	"smartcv-backend/internal/shared/metrics"
	"smartcv-backend/internal/shared/server/middleware"
	"smartcv-backend/internal/shared/server/respond"
)

// NewEngine builds the Gin engine with the shared middleware chain and the
// operational endpoints. Feature handlers register themselves on the
// /api/v1 group returned alongside.
func NewEngine(cfg config.Config) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	registerMeRoutes(api)

	return r, api
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
