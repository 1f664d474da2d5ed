package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stockledger/internal/core/container"
	"stockledger/internal/middleware"
	"stockledger/pkg/security"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware(container.Tokens))

	container.ItemHandler.RegisterRoutes(protectedRoutes)
	container.TransactionHandler.RegisterRoutes(protectedRoutes)
	container.SerialHandler.RegisterRoutes(protectedRoutes)
	container.SyncHandler.RegisterRoutes(protectedRoutes)
	container.BackupHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}

// CORSMiddleware allows the browser frontend to talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return cors.New(corsConfig)
}
