package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/config"
	"asc-pentagono/diagnosis-api/internal/handlers"
	"asc-pentagono/diagnosis-api/internal/logger"
	"asc-pentagono/diagnosis-api/internal/services"
	"asc-pentagono/diagnosis-api/internal/tracing"
)

// defaultCSP is the policy sent by the serverless deployment, which also
// serves the browser front end.
const defaultCSP = "default-src 'self' http://localhost:3001 https: https://cdn.jsdelivr.net; " +
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' http://localhost:3001 https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' http://localhost:3001 https:; " +
	"img-src 'self' data: http://localhost:3001 https:; " +
	"font-src 'self' http://localhost:3001 https:; " +
	"connect-src 'self' http://localhost:3001 https: https://cdn.jsdelivr.net;"

func main() {
	cfg := config.Load(config.Defaults{
		Schema:                services.SchemaPrinciples,
		ContentSecurityPolicy: defaultCSP,
	})

	zl := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zl.Sync() //nolint:errcheck

	ctx := context.Background()

	if _, err := tracing.Init("asc-diagnosis-lambda", cfg.Tracing.Stdout); err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	diagnosisService, err := services.NewDiagnosisServiceFromConfig(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialize diagnosis service", zap.Error(err))
	}

	h, err := handlers.NewLambdaHandler(diagnosisService, handlers.CORSPolicy{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: cfg.CORS.AllowMethods,
		AllowHeaders: cfg.CORS.AllowHeaders,
	}, cfg.Server.ContentSecurityPolicy, zl)
	if err != nil {
		zl.Fatal("Failed to create handler", zap.Error(err))
	}

	lambda.Start(h.Handle)
}
