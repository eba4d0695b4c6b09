package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"asc-pentagono/diagnosis-api/internal/models"
)

type RequestValidator struct {
	schema *gojsonschema.Schema
}

func NewRequestValidator(s ScoreSchema) (*RequestValidator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.jsonSchema()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s request schema: %w", s.Name, err)
	}
	return &RequestValidator{schema: compiled}, nil
}

// Validate checks body against the request schema and decodes it.
func (v *RequestValidator) Validate(body []byte) (*models.DiagnosisRequest, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errors.New("empty request body")
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("malformed request body: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}

	var req models.DiagnosisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}
