package models

type DiagnosisRequest struct {
	ProjectName        string             `json:"projectName"`
	ProjectDescription string             `json:"projectDescription"`
	Scores             map[string]float64 `json:"scores"`
}

type DiagnosisResponse struct {
	DiagnosisText string `json:"diagnosisText"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Time       string `json:"time"`
	Schema     string `json:"schema"`
	Configured bool   `json:"configured"`
}
