package handlers

import (
	"errors"
	"net/http"

	"asc-pentagono/diagnosis-api/internal/services"
)

const msgMethodNotAllowed = "Método no permitido. Usa POST."

// errorStatus maps a service error to the HTTP status and the message the
// caller is allowed to see.
func errorStatus(err error) (int, string) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError, services.MsgGenerationFailed
	}

	switch svcErr.Kind {
	case services.ErrorValidation:
		return http.StatusBadRequest, svcErr.Message
	case services.ErrorConfiguration, services.ErrorUpstream:
		return http.StatusInternalServerError, svcErr.Message
	default:
		return http.StatusInternalServerError, services.MsgGenerationFailed
	}
}
