package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stockledger/cmd"
	"stockledger/internal/config"
	"stockledger/internal/core/container"
	"stockledger/internal/core/logger"
	"stockledger/internal/core/routes"
	"stockledger/internal/middleware"
)

func main() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Utility commands run instead of the server when arguments are given.
	if len(os.Args) > 1 {
		cmd.Execute(context.Background())
		return
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	appContainer := container.NewAppContainer(cfg, appLogger)
	defer appContainer.Reconciler.Close()

	// Resolve the startup collection: remote snapshot, then local, then empty.
	items := appContainer.Reconciler.Load(context.Background())
	appContainer.Store.Replace(items)
	appLogger.Info("collection loaded",
		zap.Int("items", len(items)),
		zap.String("syncStatus", string(appContainer.Reconciler.Status())),
	)

	router := gin.Default()
	router.Use(routes.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware(logger.Named(appLogger, "recovery")))

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		appLogger.Fatal("server stopped", zap.Error(err))
	}
}
