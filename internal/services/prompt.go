package services

import (
	"strconv"
	"strings"

	"asc-pentagono/diagnosis-api/internal/models"
)

const (
	placeholderName        = "{{projectName}}"
	placeholderDescription = "{{projectDescription}}"
)

// PromptTemplate is a fixed system instruction plus a user instruction with
// {{projectName}}, {{projectDescription}} and {{score.KEY}} placeholders.
type PromptTemplate struct {
	System string
	User   string
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildDiagnosisPrompt renders the schema's template for req. Caller text is
// inserted verbatim; placeholders inside it are not expanded again.
func (pb *PromptBuilder) BuildDiagnosisPrompt(schema ScoreSchema, req *models.DiagnosisRequest) string {
	pairs := []string{
		placeholderName, req.ProjectName,
		placeholderDescription, req.ProjectDescription,
	}
	for _, c := range schema.Categories {
		pairs = append(pairs, scorePlaceholder(c.Key), FormatScore(req.Scores[c.Key]))
	}

	user := strings.NewReplacer(pairs...).Replace(schema.Template.User)
	return schema.Template.System + "\n\n" + user
}

// FormatScore renders a score with the fewest digits that round-trip, so
// 3 prints as "3" and 3.5 as "3.5".
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func scorePlaceholder(key string) string {
	return "{{score." + key + "}}"
}

var principlesTemplate = PromptTemplate{
	System: `Eres un sistema inteligente experto en la Política Pública de Apropiación Social del Conocimiento (ASC) del Ministerio de Ciencia, Tecnología e Innovación de Colombia. Tu misión es actuar como un asesor especializado para proyectos de ciencia, tecnología e innovación, generando diagnósticos detallados y recomendaciones prácticas basadas en los 5 Principios ASC, sus 19 Líneas Estratégicas y los Productos Esperados de la política pública.

CONOCIMIENTO ESPECIALIZADO REQUERIDO:
- Los 5 Principios ASC: COPE (Contexto y Pertinencia), PART (Participación Activa), DIIN (Diálogo de Saberes), IMTR (Impacto y Transformación), ARCR (Reflexión Crítica)
- Las 19 Líneas Estratégicas: Espacios para hacer participar, Espacios para enseñar a participar, Crear ambientes democráticos, Dialogar saberes diversos, Gestionar la diversidad cognitiva, Creación conjunta de conocimiento, Empoderamiento, Capacitación, Línea directa, Reflexividad continua, entre otras.
- Los Productos Esperados: Narrativas participativas, Mapas de actores, Indicadores de impacto, Planes de acción, Registros de experiencia, Informes de evaluación, entre otros.

Tu análisis debe ser detallado, específico y apoyado en la política pública ASC. Proporciona explicaciones profundas y recomendaciones prácticas que puedan implementarse efectivamente.`,
	User: `
ANALIZA DE FORMA INTEGRAL el siguiente proyecto con base en la Política Pública de Apropiación Social del Conocimiento (ASC) del Ministerio de Ciencia, Tecnología e Innovación de Colombia.

=== INFORMACIÓN DEL PROYECTO ===
**Nombre del Proyecto:** {{projectName}}
**Descripción del Proyecto:**
{{projectDescription}}

=== RESULTADOS DEL DIAGNÓSTICO ASC ===
Puntuaciones obtenidas en cada Principio (Escala 1-5):
- Contexto y Pertinencia (COPE): {{score.COPE}}
- Participación Activa (PART): {{score.PART}}
- Diálogo e Integración de Saberes (DIIN): {{score.DIIN}}
- Impacto y Transformación (IMTR): {{score.IMTR}}
- Aprendizaje y Reflexión Crítica (ARCR): {{score.ARCR}}

=== INSTRUCCIONES OBLIGATORIAS PARA LA RESPUESTA ===

GENERA UN INFORME DETALLADO en formato Markdown que contenga:

## DIAGNÓSTICO GENERAL
[Análisis integral del perfil de ASC del proyecto a partir de su descripción y de las puntuaciones de todos los principios: equilibrio general, oportunidades estratégicas de fortalecimiento y una valoración holística desde la política pública ASC]

### Contexto y Pertinencia (COPE) - Puntuación: {{score.COPE}}
#### Diagnóstico Específico
[Significado del principio en el contexto del proyecto, evidencia de la puntuación actual y relación con líneas estratégicas ASC]

#### Recomendaciones Accionables
- [Acción concreta con tiempos, responsables e indicadores medibles]
- [Acción fundamentada en la política ASC con recursos necesarios]
- [Acción estratégica para un fortalecimiento sostenible]

### Participación Activa (PART) - Puntuación: {{score.PART}}
#### Diagnóstico Específico
[Barreras actuales y oportunidades de mejora relacionadas con espacios democráticos y liderazgo comunitario]

#### Recomendaciones Accionables
- [Estrategias concretas para potenciar la participación activa]
- [Mecanismos de desarrollo de capacidades y empoderamiento]
- [Instrumentos de gobernanza compartida y democrática]

### Diálogo de Saberes (DIIN) - Puntuación: {{score.DIIN}}
#### Diagnóstico Específico
[Integración de conocimientos diversos, obstáculos para el diálogo respetuoso y oportunidades de enriquecimiento mutuo]

#### Recomendaciones Accionables
- [Metodologías participativas para la gestión de la diversidad cognitiva]
- [Estrategias de creación conjunta de conocimiento]
- [Mecanismos de valoración de saberes tradicionales]

### Impacto y Transformación (IMTR) - Puntuación: {{score.IMTR}}
#### Diagnóstico Específico
[Capacidad del proyecto para generar cambios concretos, sostenibilidad y replicabilidad de sus resultados]

#### Recomendaciones Accionables
- [Indicadores de impacto medibles y realistas]
- [Planes de acción con cronogramas definidos]
- [Estrategias de escalamiento y transferencia de conocimientos]

### Aprendizaje y Reflexión Crítica (ARCR) - Puntuación: {{score.ARCR}}
#### Diagnóstico Específico
[Procesos de monitoreo continuo y sistematización de experiencias, capacidades de aprendizaje organizacional]

#### Recomendaciones Accionables
- [Sistemas de evaluación continua con retroalimentación estructurada]
- [Metodologías de reflexión colectiva y toma de decisiones informada]
- [Herramientas de documentación y aprendizaje institucional]

=== LINEAMIENTOS DE CALIDAD ===
- **DETALLADAS Y ESPECÍFICAS**: cada recomendación incluye tiempos, recursos y actores responsables
- **FUNDAMENTADAS EN ASC**: referencia líneas estratégicas y productos esperados específicos
- **IMPLEMENTABLES**: pasos concretos de ejecución y medición
- **HOLÍSTICAS**: considera las interdependencias entre principios

=== ESTRUCTURA DE RESPUESTA REQUERIDA ===
La respuesta debe seguir EXACTAMENTE esta estructura para que el sistema pueda procesarla:

## DIAGNÓSTICO GENERAL
[Análisis inicial]

### Contexto y Pertinencia (COPE) - Puntuación: X.X
#### Diagnóstico Específico
[Análisis detallado]

#### Recomendaciones Accionables
[Lista de recomendaciones]

[Repetir la estructura para cada principio con el formato exacto]
`,
}

var vectorsTemplate = PromptTemplate{
	System: `Eres un sistema inteligente experto en apropiación social del conocimiento (ASC) y asesoramiento para proyectos de ciencia, tecnología e innovación social con impacto ciudadano. Tu misión es generar diagnósticos claros y recomendaciones accionables basadas en la descripción de un proyecto y los resultados de un formulario de autoevaluación de 36 preguntas agrupadas en 6 vectores (DISO, INSA, REPO, APRA, COPA, COAC), donde cada vector tiene una puntuación promedio de 1 (bajo) a 5 (alto).`,
	User: `
Analiza el siguiente proyecto y sus resultados de autoevaluación de ASC:

**Nombre del Proyecto:** {{projectName}}
**Descripción del Proyecto:**
{{projectDescription}}

**Resultados Promedio por Vector (Escala 1-5):**
- Diálogo Social (DISO): {{score.DISO}}
- Integración de Saberes (INSA): {{score.INSA}}
- Respuesta Oportuna (REPO): {{score.REPO}}
- Aplicación Práctica (APRA): {{score.APRA}}
- Co-creación Participativa (COPA): {{score.COPA}}
- Conectividad Accesible (COAC): {{score.COAC}}

**Instrucciones:**
Proporciona un informe estructurado de la siguiente manera:

1.  **Diagnóstico General:** Un párrafo breve que resuma el perfil general de ASC del proyecto, destacando fortalezas y áreas clave de mejora según el conjunto de puntuaciones.
2.  **Análisis y Recomendaciones por Vector:** Para CADA UNO de los 6 vectores (DISO, INSA, REPO, APRA, COPA, COAC), incluye:
    *   Un título en Markdown (ej. ` + "`### Diálogo Social (DISO) - Puntuación: {{score.DISO}}`" + `).
    *   **Diagnóstico Específico:** Un párrafo que analice el desempeño en el vector y lo relacione con la descripción del proyecto cuando sea posible.
    *   **Recomendaciones Accionables:** Una lista (con '*' o '-') de 2 a 3 sugerencias CONCRETAS y PRÁCTICAS para mejorar o fortalecer el vector, adaptadas al contexto que se infiere de la descripción.

Utiliza un lenguaje claro, positivo y orientador. Usa Markdown para títulos (###), listas (* o -) y negritas (**texto**). Asegúrate de cubrir los 6 vectores.
`,
}
