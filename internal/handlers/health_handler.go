package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"asc-pentagono/diagnosis-api/internal/models"
	"asc-pentagono/diagnosis-api/internal/services"
)

type HealthHandler struct {
	service services.DiagnosisService
}

func NewHealthHandler(service services.DiagnosisService) *HealthHandler {
	return &HealthHandler{service: service}
}

// HandleHealth reports liveness. A missing credential is visible here but
// does not make the process unhealthy.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:     "healthy",
		Time:       time.Now().UTC().Format(time.RFC3339),
		Schema:     h.service.Schema().Name,
		Configured: h.service.Configured(),
	})
}
