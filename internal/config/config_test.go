package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asc-pentagono/diagnosis-api/internal/paramstore"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")
	t.Setenv("SCORE_SCHEMA", "")

	cfg := Load(Defaults{Schema: "vectors", ContentSecurityPolicy: "default-src 'self'"})

	require.Equal(t, "3001", cfg.Server.Port)
	require.Equal(t, "vectors", cfg.Diagnosis.Schema)
	require.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	require.Equal(t, "*", cfg.CORS.AllowOrigins)
	require.Equal(t, "POST, OPTIONS", cfg.CORS.AllowMethods)
	require.Equal(t, "Content-Type", cfg.CORS.AllowHeaders)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_API_KEY", "  key-123 ")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")
	t.Setenv("SCORE_SCHEMA", "principles")
	t.Setenv("CONTENT_SECURITY_POLICY", "")
	t.Setenv("OTEL_TRACES_STDOUT", "true")

	cfg := Load(Defaults{Schema: "vectors", ContentSecurityPolicy: "default-src 'self'"})

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "key-123", cfg.Gemini.APIKey)
	require.Equal(t, 15*time.Second, cfg.Gemini.Timeout)
	require.Equal(t, "principles", cfg.Diagnosis.Schema)
	require.Empty(t, cfg.Server.ContentSecurityPolicy)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Tracing.Stdout)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	cfg := Load(Defaults{})
	require.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
}

type stubGetter struct {
	value string
	err   error
	calls int
}

func (s *stubGetter) GetParameter(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.value, s.err
}

func TestResolveAPIKey(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		param   string
		getter  *stubGetter
		want    string
		wantErr string
		calls   int
	}{
		{name: "env key wins", key: "env-key", param: "/asc/key", getter: &stubGetter{value: "ssm-key"}, want: "env-key"},
		{name: "no key no param", getter: &stubGetter{}, wantErr: "GEMINI_API_KEY is not set"},
		{name: "from parameter store", param: "/asc/key", getter: &stubGetter{value: " ssm-key\n"}, want: "ssm-key", calls: 1},
		{name: "parameter store error", param: "/asc/key", getter: &stubGetter{err: errors.New("denied")}, wantErr: "denied", calls: 1},
		{name: "blank parameter", param: "/asc/key", getter: &stubGetter{value: "  "}, wantErr: "GEMINI_API_KEY is not set", calls: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Gemini: GeminiConfig{APIKey: tc.key, APIKeyParam: tc.param}}
			got, err := cfg.ResolveAPIKey(context.Background(), func(context.Context) (paramstore.Getter, error) {
				return tc.getter, nil
			})
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.want, got)
			}
			require.Equal(t, tc.calls, tc.getter.calls)
		})
	}
}

func TestResolveAPIKey_GetterConstructionFails(t *testing.T) {
	cfg := &Config{Gemini: GeminiConfig{APIKeyParam: "/asc/key"}}
	_, err := cfg.ResolveAPIKey(context.Background(), func(context.Context) (paramstore.Getter, error) {
		return nil, errors.New("no region")
	})
	require.ErrorContains(t, err, "no region")
}
