package constant

const (
	AnswerNotAvailable = "The information is not available in the provided documents."

	HealthStatusOk   = "ok"
	LlmProviderNone  = "none"
	LlmModelExtract  = "extractive"
	ReportSummaryTag = "Summary"
)
