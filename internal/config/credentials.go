package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asc-pentagono/diagnosis-api/internal/paramstore"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// ResolveAPIKey returns the Gemini credential. GEMINI_API_KEY wins; otherwise
// the key is read once from the SSM parameter named by GEMINI_API_KEY_PARAM.
// newGetter is only called when the parameter store is actually needed.
func (c *Config) ResolveAPIKey(ctx context.Context, newGetter func(context.Context) (paramstore.Getter, error)) (string, error) {
	if c.Gemini.APIKey != "" {
		return c.Gemini.APIKey, nil
	}
	if c.Gemini.APIKeyParam == "" || newGetter == nil {
		return "", ErrMissingAPIKey
	}

	getter, err := newGetter(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create parameter store client: %w", err)
	}

	key, err := getter.GetParameter(ctx, c.Gemini.APIKeyParam)
	if err != nil {
		return "", fmt.Errorf("failed to read api key parameter: %w", err)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

// SSMGetter adapts paramstore.NewFromEnvironment to the ResolveAPIKey signature.
func SSMGetter(ctx context.Context) (paramstore.Getter, error) {
	return paramstore.NewFromEnvironment(ctx)
}
