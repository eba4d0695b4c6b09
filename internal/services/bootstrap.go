package services

import (
	"context"

	"go.uber.org/zap"

	"asc-pentagono/diagnosis-api/internal/config"
)

// NewDiagnosisServiceFromConfig resolves the credential once and builds the
// service. A missing or unreadable credential is not fatal: the returned
// service reports a configuration error on every request. An unknown
// schema name is fatal.
func NewDiagnosisServiceFromConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (DiagnosisService, error) {
	schema, err := LookupSchema(cfg.Diagnosis.Schema)
	if err != nil {
		return nil, err
	}

	model := cfg.Gemini.Model
	if model == "" {
		model = schema.DefaultModel
	}

	var gemini GeminiService
	apiKey, configErr := cfg.ResolveAPIKey(ctx, config.SSMGetter)
	if configErr == nil {
		gemini, configErr = NewGeminiService(ctx, GeminiOptions{APIKey: apiKey, Model: model})
	}

	if configErr != nil {
		log.Error("FATAL: Gemini is not configured; every diagnosis request will fail", zap.Error(configErr))
		return NewDiagnosisService(schema, nil, configErr, cfg.Gemini.Timeout, log)
	}

	log.Info("Gemini model initialized",
		zap.String("model", model),
		zap.String("schema", schema.Name),
		zap.Duration("timeout", cfg.Gemini.Timeout),
	)
	return NewDiagnosisService(schema, gemini, nil, cfg.Gemini.Timeout, log)
}
