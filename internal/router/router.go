package router

import (
	"github.com/gin-gonic/gin"

	"mediaup/internal/handler"
	"mediaup/internal/middleware"
	"mediaup/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tokenSvc service.TokenService,
	authH *handler.AuthHandler,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/token", authH.Token)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokenSvc))

	uploads := protected.Group("/uploads")
	uploads.POST("/authorize", uploadH.Authorize)
	uploads.POST("/proxy", uploadH.Proxy)

	return r
}
