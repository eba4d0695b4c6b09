package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/models"
	"asc-pentagono/diagnosis-api/internal/services"
)

const (
	AppName    = "ASC Diagnosis API"
	AppVersion = "1.0.0"
)

type RouterConfig struct {
	CORS                  CORSPolicy
	ContentSecurityPolicy string
	RequestLog            bool
}

// NewApp builds the fiber application serving the diagnosis endpoint.
func NewApp(rc RouterConfig, service services.DiagnosisService, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		ReadTimeout:           30 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if rc.RequestLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}
	if rc.ContentSecurityPolicy != "" {
		app.Use(helmet.New(helmet.Config{
			ContentSecurityPolicy:     rc.ContentSecurityPolicy,
			CrossOriginResourcePolicy: "cross-origin",
		}))
	}
	app.Use(rc.CORS.Middleware())

	diagnoseHandler := NewDiagnoseHandler(service, log)
	healthHandler := NewHealthHandler(service)

	// Routes
	api := app.Group("/api")
	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/diagnose", diagnoseHandler.HandleDiagnose)
	api.All("/diagnose", diagnoseHandler.HandleMethodNotAllowed)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": AppName,
			"version": AppVersion,
			"schema":  service.Schema().Name,
			"endpoints": []string{
				"POST /api/diagnose",
				"GET /api/health",
				"GET /metrics",
			},
		})
	})

	return app
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
	}
}
