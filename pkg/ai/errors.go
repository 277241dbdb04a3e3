package ai

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind is the machine-readable classification of an expected provider
// failure. The values double as the wire codes surfaced to the frontend.
type ErrorKind string

const (
	ErrConfigMissing ErrorKind = "config_missing"
	ErrAuthFailed    ErrorKind = "auth_failed"
	ErrQuotaExceeded ErrorKind = "quota_exceeded"
	ErrTimeout       ErrorKind = "timeout"
	ErrConnection    ErrorKind = "connection_error"
	ErrEmptyResponse ErrorKind = "empty_response"
	ErrUnknown       ErrorKind = "unknown"
)

// ProviderError is an expected LLM-backend failure. Network/auth/quota
// problems are control flow, not panics: callers switch on Kind.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError unwraps err into a *ProviderError if it is one
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Suggestion returns the user-actionable hint for an error kind
func (k ErrorKind) Suggestion() string {
	switch k {
	case ErrConfigMissing:
		return "No API key is configured for this provider. Add one in settings."
	case ErrAuthFailed:
		return "The API key was rejected. Update it in settings."
	case ErrQuotaExceeded:
		return "Rate limit reached. Switch to another provider or retry later."
	case ErrTimeout:
		return "The provider timed out. Retry the analysis."
	case ErrConnection:
		return "Could not reach the provider. Check your network connection."
	default:
		return "Analysis failed. See the error message for details."
	}
}

// classifyStatus maps an HTTP error response to an error kind using the
// status code plus message sniffing, so auth and quota failures surface
// distinctly from generic network errors.
func classifyStatus(statusCode int, body string) ErrorKind {
	lower := strings.ToLower(body)

	if statusCode == 401 || strings.Contains(lower, "invalid_api_key") || strings.Contains(lower, "unauthorized") {
		return ErrAuthFailed
	}
	if statusCode == 429 || strings.Contains(lower, "quota") || strings.Contains(lower, "rate_limit") || strings.Contains(lower, "rate limit") {
		return ErrQuotaExceeded
	}
	return ErrConnection
}

// classifyTransportError maps a transport-level error (client.Do failed)
// to timeout vs connection failure.
func classifyTransportError(err error) ErrorKind {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return ErrTimeout
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return ErrTimeout
	}

	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return ErrConnection
		}
	}

	return ErrConnection
}
