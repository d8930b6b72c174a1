// Package apierror defines the error envelopes returned to API clients.
// Handlers never write raw error strings: everything goes through these
// types so internal details (SQL errors, stack traces) stay out of responses.
package apierror

// APIError is the envelope for every 4xx/5xx response body.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field messages for request binding failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}
