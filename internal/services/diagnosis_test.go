package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGemini struct {
	mu      sync.Mutex
	text    string
	err     error
	delay   time.Duration
	prompts []string
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func (s *stubGemini) ModelName() string { return "test-model" }

func (s *stubGemini) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func newTestService(t *testing.T, schemaName string, gemini GeminiService, timeout time.Duration) DiagnosisService {
	t.Helper()
	schema, err := LookupSchema(schemaName)
	require.NoError(t, err)
	svc, err := NewDiagnosisService(schema, gemini, nil, timeout, nil)
	require.NoError(t, err)
	return svc
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, kind, svcErr.Kind)
	return svcErr
}

const principlesBody = `{"projectName":"P","projectDescription":"D","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`

func TestDiagnose_PrinciplesScenario(t *testing.T) {
	gemini := &stubGemini{text: "OK"}
	svc := newTestService(t, SchemaPrinciples, gemini, time.Second)

	text, err := svc.Diagnose(context.Background(), []byte(principlesBody))
	require.NoError(t, err)
	require.Equal(t, "OK", text)
	require.Equal(t, 1, gemini.calls())

	prompt := gemini.prompts[0]
	require.Contains(t, prompt, "**Nombre del Proyecto:** P")
	require.Contains(t, prompt, "- Contexto y Pertinencia (COPE): 3")
	require.Contains(t, prompt, "- Participación Activa (PART): 4")
	require.Contains(t, prompt, "- Diálogo e Integración de Saberes (DIIN): 2")
	require.Contains(t, prompt, "- Impacto y Transformación (IMTR): 5")
	require.Contains(t, prompt, "- Aprendizaje y Reflexión Crítica (ARCR): 1")
}

func TestDiagnose_VectorsScenario(t *testing.T) {
	gemini := &stubGemini{text: "## Informe\n\ntexto"}
	svc := newTestService(t, SchemaVectors, gemini, time.Second)

	body := `{"projectName":"Huerta","projectDescription":"Huerta comunitaria","scores":{"DISO":3.5,"INSA":4,"REPO":2,"APRA":5,"COPA":1,"COAC":2.25}}`
	text, err := svc.Diagnose(context.Background(), []byte(body))
	require.NoError(t, err)
	require.Equal(t, "## Informe\n\ntexto", text)
	require.Contains(t, gemini.prompts[0], "- Diálogo Social (DISO): 3.5")
	require.Contains(t, gemini.prompts[0], "- Conectividad Accesible (COAC): 2.25")
}

func TestDiagnose_InvalidRequestsNeverReachUpstream(t *testing.T) {
	cases := map[string]string{
		"empty body":          ``,
		"not json":            `projectName=P`,
		"missing name":        `{"projectDescription":"D","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"missing description": `{"projectName":"P","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"missing scores":      `{"projectName":"P","projectDescription":"D"}`,
		"blank name":          `{"projectName":"   ","projectDescription":"D","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"empty description":   `{"projectName":"P","projectDescription":"","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"too few scores":      `{"projectName":"P","projectDescription":"D","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5}}`,
		"too many scores":     `{"projectName":"P","projectDescription":"D","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1,"DISO":2}}`,
		"wrong schema keys":   `{"projectName":"P","projectDescription":"D","scores":{"DISO":3,"INSA":4,"REPO":2,"APRA":5,"COPA":1}}`,
		"string score":        `{"projectName":"P","projectDescription":"D","scores":{"COPE":"3","PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"score out of range":  `{"projectName":"P","projectDescription":"D","scores":{"COPE":6,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"name not a string":   `{"projectName":42,"projectDescription":"D","scores":{"COPE":3,"PART":4,"DIIN":2,"IMTR":5,"ARCR":1}}`,
		"scores not object":   `{"projectName":"P","projectDescription":"D","scores":[3,4,2,5,1]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			gemini := &stubGemini{text: "OK"}
			svc := newTestService(t, SchemaPrinciples, gemini, time.Second)

			_, err := svc.Diagnose(context.Background(), []byte(body))
			svcErr := requireKind(t, err, ErrorValidation)
			require.Equal(t, MsgInvalidRequest, svcErr.Message)
			require.Zero(t, gemini.calls())
		})
	}
}

func TestDiagnose_UpstreamFailureIsGeneric(t *testing.T) {
	for _, cause := range []error{
		errors.New("googleapi: Error 429: quota exceeded for project 1234"),
		errors.New("dial tcp: connection refused"),
	} {
		gemini := &stubGemini{err: cause}
		svc := newTestService(t, SchemaPrinciples, gemini, time.Second)

		_, err := svc.Diagnose(context.Background(), []byte(principlesBody))
		svcErr := requireKind(t, err, ErrorUpstream)
		require.Equal(t, MsgGenerationFailed, svcErr.Message)
		require.NotContains(t, svcErr.Message, cause.Error())
		require.ErrorIs(t, err, cause)
		require.Equal(t, 1, gemini.calls())
	}
}

func TestDiagnose_UpstreamTimeout(t *testing.T) {
	gemini := &stubGemini{text: "late", delay: time.Second}
	svc := newTestService(t, SchemaPrinciples, gemini, 20*time.Millisecond)

	_, err := svc.Diagnose(context.Background(), []byte(principlesBody))
	svcErr := requireKind(t, err, ErrorUpstream)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, svcErr.Error(), "timed out")
}

func TestDiagnose_NotConfigured(t *testing.T) {
	schema, err := LookupSchema(SchemaPrinciples)
	require.NoError(t, err)
	svc, err := NewDiagnosisService(schema, nil, errors.New("GEMINI_API_KEY is not set"), time.Second, nil)
	require.NoError(t, err)
	require.False(t, svc.Configured())

	for _, body := range []string{principlesBody, `{}`, ``} {
		_, err := svc.Diagnose(context.Background(), []byte(body))
		svcErr := requireKind(t, err, ErrorConfiguration)
		require.Equal(t, MsgNotConfigured, svcErr.Message)
	}
}

func TestDiagnose_ConcurrentRequests(t *testing.T) {
	gemini := &stubGemini{text: "OK", delay: 5 * time.Millisecond}
	svc := newTestService(t, SchemaPrinciples, gemini, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := svc.Diagnose(context.Background(), []byte(principlesBody))
			assert.NoError(t, err)
			assert.Equal(t, "OK", text)
		}()
	}
	wg.Wait()
	require.Equal(t, 20, gemini.calls())
}

func TestRequestIDRoundTrip(t *testing.T) {
	require.Empty(t, RequestIDFrom(context.Background()))
	require.Equal(t, "abc", RequestIDFrom(WithRequestID(context.Background(), "abc")))
}
