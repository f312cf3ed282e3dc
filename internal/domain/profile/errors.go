package profile

// Error codes produced by this package, see pkg/errors.
const (
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeUserNotFound        = "user_not_found"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeMalformedPayload    = "malformed_payload"
	CodeCalendarParse       = "calendar_parse"
)
