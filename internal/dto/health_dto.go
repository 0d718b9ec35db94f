package dto

type HealthResponse struct {
	Status      string `json:"status"`
	LlmEnabled  bool   `json:"llm_enabled"`
	LlmProvider string `json:"llm_provider"`
	LlmModel    string `json:"llm_model"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
