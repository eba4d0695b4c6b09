package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/models"
	"asc-pentagono/diagnosis-api/internal/services"
)

// LambdaHandler serves the diagnosis endpoint from API Gateway proxy events.
type LambdaHandler struct {
	service services.DiagnosisService
	headers map[string]string
	log     *zap.Logger
}

func NewLambdaHandler(service services.DiagnosisService, cors CORSPolicy, csp string, log *zap.Logger) (*LambdaHandler, error) {
	if service == nil {
		return nil, errors.New("handlers: diagnosis service must not be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	headers := cors.Headers()
	headers["Content-Type"] = "application/json"
	if csp != "" {
		headers["Content-Security-Policy"] = csp
	}

	return &LambdaHandler{
		service: service,
		headers: headers,
		log:     log,
	}, nil
}

func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	switch req.HTTPMethod {
	case http.MethodOptions:
		return h.respond(requestID, http.StatusOK, ""), nil
	case http.MethodPost:
	default:
		h.log.Warn("Method not allowed", zap.String("method", req.HTTPMethod), zap.String("request_id", requestID))
		return h.respondJSON(requestID, http.StatusMethodNotAllowed, models.ErrorResponse{Error: msgMethodNotAllowed}), nil
	}

	h.log.Info("Received diagnosis request",
		zap.String("request_id", requestID),
		zap.String("path", req.Path),
		zap.String("ip", req.RequestContext.Identity.SourceIP),
	)

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			h.log.Warn("Failed to decode base64 body", zap.Error(err), zap.String("request_id", requestID))
			return h.respondJSON(requestID, http.StatusBadRequest, models.ErrorResponse{Error: services.MsgInvalidRequest}), nil
		}
		body = decoded
	}

	text, err := h.service.Diagnose(services.WithRequestID(ctx, requestID), body)
	if err != nil {
		status, message := errorStatus(err)
		return h.respondJSON(requestID, status, models.ErrorResponse{Error: message}), nil
	}

	return h.respondJSON(requestID, http.StatusOK, models.DiagnosisResponse{DiagnosisText: text}), nil
}

func (h *LambdaHandler) respondJSON(requestID string, status int, v interface{}) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(v)
	if err != nil {
		h.log.Error("Failed to encode response", zap.Error(err), zap.String("request_id", requestID))
		return h.respond(requestID, http.StatusInternalServerError, `{"error":"`+services.MsgGenerationFailed+`"}`)
	}
	return h.respond(requestID, status, string(raw))
}

func (h *LambdaHandler) respond(requestID string, status int, body string) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(h.headers)+1)
	for k, v := range h.headers {
		headers[k] = v
	}
	headers["X-Request-Id"] = requestID

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}
