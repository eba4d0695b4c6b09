package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/models"
	"asc-pentagono/diagnosis-api/internal/services"
)

type DiagnoseHandler struct {
	service services.DiagnosisService
	log     *zap.Logger
}

func NewDiagnoseHandler(service services.DiagnosisService, log *zap.Logger) *DiagnoseHandler {
	return &DiagnoseHandler{
		service: service,
		log:     log,
	}
}

// HandleDiagnose handles POST /api/diagnose
func (h *DiagnoseHandler) HandleDiagnose(c *fiber.Ctx) error {
	requestID := c.GetRespHeader(fiber.HeaderXRequestID)
	h.log.Info("Received diagnosis request",
		zap.String("request_id", requestID),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()),
	)

	ctx := services.WithRequestID(c.UserContext(), requestID)
	text, err := h.service.Diagnose(ctx, c.Body())
	if err != nil {
		status, message := errorStatus(err)
		return c.Status(status).JSON(models.ErrorResponse{Error: message})
	}

	return c.JSON(models.DiagnosisResponse{DiagnosisText: text})
}

// HandleMethodNotAllowed answers any method other than POST and OPTIONS.
func (h *DiagnoseHandler) HandleMethodNotAllowed(c *fiber.Ctx) error {
	h.log.Warn("Method not allowed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	c.Set(fiber.HeaderAllow, "POST, OPTIONS")
	return c.Status(fiber.StatusMethodNotAllowed).JSON(models.ErrorResponse{Error: msgMethodNotAllowed})
}
