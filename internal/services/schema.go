package services

import (
	"fmt"
	"strings"
)

const (
	SchemaPrinciples = "principles"
	SchemaVectors    = "vectors"
)

type Category struct {
	Key   string
	Label string
}

// ScoreSchema is one supported set of assessment categories together with
// the prompt and model used to diagnose it.
type ScoreSchema struct {
	Name         string
	Categories   []Category
	DefaultModel string
	Template     PromptTemplate
}

func (s ScoreSchema) Keys() []string {
	keys := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		keys[i] = c.Key
	}
	return keys
}

// jsonSchema describes a valid request body for this category set.
func (s ScoreSchema) jsonSchema() map[string]interface{} {
	scoreProps := make(map[string]interface{}, len(s.Categories))
	for _, c := range s.Categories {
		scoreProps[c.Key] = map[string]interface{}{
			"type":    "number",
			"minimum": 1,
			"maximum": 5,
		}
	}

	text := map[string]interface{}{
		"type":      "string",
		"minLength": 1,
		"pattern":   `\S`,
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []string{"projectName", "projectDescription", "scores"},
		"properties": map[string]interface{}{
			"projectName":        text,
			"projectDescription": text,
			"scores": map[string]interface{}{
				"type":                 "object",
				"required":             s.Keys(),
				"properties":           scoreProps,
				"additionalProperties": false,
			},
		},
	}
}

var principlesSchema = ScoreSchema{
	Name: SchemaPrinciples,
	Categories: []Category{
		{Key: "COPE", Label: "Contexto y Pertinencia"},
		{Key: "PART", Label: "Participación Activa"},
		{Key: "DIIN", Label: "Diálogo e Integración de Saberes"},
		{Key: "IMTR", Label: "Impacto y Transformación"},
		{Key: "ARCR", Label: "Aprendizaje y Reflexión Crítica"},
	},
	DefaultModel: "gemini-2.0-flash-lite",
	Template:     principlesTemplate,
}

var vectorsSchema = ScoreSchema{
	Name: SchemaVectors,
	Categories: []Category{
		{Key: "DISO", Label: "Diálogo Social"},
		{Key: "INSA", Label: "Integración de Saberes"},
		{Key: "REPO", Label: "Respuesta Oportuna"},
		{Key: "APRA", Label: "Aplicación Práctica"},
		{Key: "COPA", Label: "Co-creación Participativa"},
		{Key: "COAC", Label: "Conectividad Accesible"},
	},
	DefaultModel: "gemini-2.0-flash-thinking-exp-01-21",
	Template:     vectorsTemplate,
}

// LookupSchema returns the schema registered under name (case-insensitive).
func LookupSchema(name string) (ScoreSchema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemaPrinciples:
		return principlesSchema, nil
	case SchemaVectors:
		return vectorsSchema, nil
	default:
		return ScoreSchema{}, fmt.Errorf("unknown score schema %q (expected %q or %q)", name, SchemaPrinciples, SchemaVectors)
	}
}
