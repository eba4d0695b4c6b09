package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/config"
	"asc-pentagono/diagnosis-api/internal/handlers"
	"asc-pentagono/diagnosis-api/internal/logger"
	"asc-pentagono/diagnosis-api/internal/services"
	"asc-pentagono/diagnosis-api/internal/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load(config.Defaults{Schema: services.SchemaVectors})

	zl := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zl.Sync() //nolint:errcheck

	ctx := context.Background()

	shutdownTracing, err := tracing.Init("asc-diagnosis-api", cfg.Tracing.Stdout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx) //nolint:errcheck

	// Initialize diagnosis service (credential checked once, here)
	diagnosisService, err := services.NewDiagnosisServiceFromConfig(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialize diagnosis service", zap.Error(err))
	}

	app := handlers.NewApp(handlers.RouterConfig{
		CORS: handlers.CORSPolicy{
			AllowOrigins: cfg.CORS.AllowOrigins,
			AllowMethods: cfg.CORS.AllowMethods,
			AllowHeaders: cfg.CORS.AllowHeaders,
		},
		ContentSecurityPolicy: cfg.Server.ContentSecurityPolicy,
		RequestLog:            true,
	}, diagnosisService, zl)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("Backend server listening",
		zap.String("url", fmt.Sprintf("http://localhost%s", addr)),
		zap.String("schema", diagnosisService.Schema().Name),
	)

	if err := app.Listen(addr); err != nil {
		zl.Fatal("Failed to start server", zap.Error(err))
	}
}
