package analysis

const (
	CodeAnalysisUnavailable = "analysis_unavailable"
	CodeResponseFormat      = "response_format"
)
