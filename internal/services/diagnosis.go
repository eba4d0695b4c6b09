package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/logger"
	"asc-pentagono/diagnosis-api/internal/metrics"
	"asc-pentagono/diagnosis-api/internal/tracing"
)

const previewLength = 300

type DiagnosisService interface {
	Diagnose(ctx context.Context, body []byte) (string, error)
	Schema() ScoreSchema
	Configured() bool
}

type diagnosisService struct {
	gemini        GeminiService
	configErr     error
	schema        ScoreSchema
	validator     *RequestValidator
	promptBuilder *PromptBuilder
	timeout       time.Duration
	log           *zap.Logger
}

// NewDiagnosisService wires the request pipeline for one schema. A nil
// gemini means the credential was missing at startup; the service then
// answers every request with a configuration error carrying configErr.
func NewDiagnosisService(
	schema ScoreSchema,
	gemini GeminiService,
	configErr error,
	timeout time.Duration,
	log *zap.Logger,
) (DiagnosisService, error) {
	validator, err := NewRequestValidator(schema)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if gemini == nil && configErr == nil {
		configErr = errors.New("gemini client not initialized")
	}

	return &diagnosisService{
		gemini:        gemini,
		configErr:     configErr,
		schema:        schema,
		validator:     validator,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		log:           log.With(zap.String("schema", schema.Name)),
	}, nil
}

func (d *diagnosisService) Schema() ScoreSchema {
	return d.schema
}

func (d *diagnosisService) Configured() bool {
	return d.gemini != nil
}

// Diagnose validates body, renders the prompt and returns the generated
// report text unmodified. Errors are always *Error.
func (d *diagnosisService) Diagnose(ctx context.Context, body []byte) (string, error) {
	log := d.log.With(zap.String("request_id", RequestIDFrom(ctx)))

	if d.gemini == nil {
		log.Error("Diagnosis requested without an initialized Gemini client", zap.Error(d.configErr))
		metrics.DiagnosisRequests.WithLabelValues(d.schema.Name, metrics.OutcomeNotConfigured).Inc()
		return "", configurationError(d.configErr)
	}

	req, err := d.validator.Validate(body)
	if err != nil {
		log.Warn("Diagnosis request rejected", zap.Error(err), zap.ByteString("body", body))
		metrics.DiagnosisRequests.WithLabelValues(d.schema.Name, metrics.OutcomeInvalidRequest).Inc()
		return "", validationError(err)
	}

	prompt := d.promptBuilder.BuildDiagnosisPrompt(d.schema, req)
	log.Info("Sending prompt to Gemini",
		zap.String("model", d.gemini.ModelName()),
		zap.String("project", req.ProjectName),
		zap.Int("prompt_length", len(prompt)),
	)

	text, err := d.generate(ctx, prompt)
	if err != nil {
		log.Error("Gemini API call failed", zap.Error(err))
		metrics.DiagnosisRequests.WithLabelValues(d.schema.Name, metrics.OutcomeUpstreamFailure).Inc()
		return "", upstreamError(err)
	}

	log.Info("Gemini response received",
		zap.Int("response_length", len(text)),
		zap.String("preview", logger.Preview(text, previewLength)),
	)
	metrics.DiagnosisRequests.WithLabelValues(d.schema.Name, metrics.OutcomeSuccess).Inc()
	return text, nil
}

// generate is the only blocking step; it runs under the configured timeout.
func (d *diagnosisService) generate(ctx context.Context, prompt string) (string, error) {
	model := d.gemini.ModelName()

	ctx, span := tracing.Tracer().Start(ctx, "gemini.GenerateContent")
	defer span.End()
	span.SetAttributes(
		attribute.String("gemini.model", model),
		attribute.String("diagnosis.schema", d.schema.Name),
		attribute.Int("prompt.length", len(prompt)),
	)

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	metrics.UpstreamInFlight.Inc()
	defer metrics.UpstreamInFlight.Dec()

	start := time.Now()
	text, err := d.gemini.GenerateText(ctx, prompt)
	status := "ok"
	if err != nil {
		status = "error"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			status = "timeout"
			err = fmt.Errorf("upstream timed out after %s: %w", d.timeout, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}
	metrics.UpstreamDuration.WithLabelValues(model, status).Observe(time.Since(start).Seconds())

	return text, err
}

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
