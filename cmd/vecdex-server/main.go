package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/chuimeng/vecdex/internal/config"
	"github.com/chuimeng/vecdex/internal/service"
	"github.com/chuimeng/vecdex/pkg/logger"
)

func main() {
	// 1. Load environment and configuration
	_ = godotenv.Load()

	configPath := os.Getenv("VECDEX_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New("vecdex-server")
	appLogger.Info("Starting ingestion server...")

	// 3. Build the ingestion service
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	svc, err := service.New(ctx, cfg, appLogger)
	cancel()
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("Failed to build service: %v", err))
	}

	// 4. Start the HTTP server
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: svc.Router(),
	}

	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(fmt.Sprintf("Failed to serve HTTP: %v", err))
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Forced shutdown: %v", err))
	}
	appLogger.Info("Server stopped")
}
