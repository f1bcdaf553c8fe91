package errors

import "fmt"

// ErrorType classifies failures of remote platform operations.
type ErrorType string

const (
	// ErrorTypeNotFound is a definitive 404 from the primary profile
	// endpoint. It is authoritative and stops the strategy chain.
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeTimeout is a request that exceeded its per-call deadline.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeConnection is a transport-level failure (DNS, refused
	// connection, reset).
	ErrorTypeConnection ErrorType = "connection"

	// ErrorTypeParsing is malformed or unexpected JSON/HTML structure.
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeStrategy is any other non-success outcome of a single
	// acquisition strategy.
	ErrorTypeStrategy ErrorType = "strategy"

	// ErrorTypeOther covers everything else.
	ErrorTypeOther ErrorType = "other"
)

// Error carries a classified failure. These never cross a public contract
// boundary: resolver and lister methods log them and return nil/empty values.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New constructs a typed error.
func New(t ErrorType, code int, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...), Code: code}
}

// IsTransport reports whether the error type is a transport failure.
// Transport failures are treated identically to any other strategy failure:
// the chain advances, nothing escalates.
func IsTransport(t ErrorType) bool {
	return t == ErrorTypeTimeout || t == ErrorTypeConnection
}

// IsRetryable reports whether a whole-call retry (the caller's
// responsibility) has any chance of succeeding.
func IsRetryable(t ErrorType) bool {
	switch t {
	case ErrorTypeTimeout, ErrorTypeConnection, ErrorTypeStrategy:
		return true
	case ErrorTypeNotFound, ErrorTypeParsing:
		return false
	default:
		return false
	}
}

// IsRetryableStatusCode reports whether an HTTP status code indicates a
// retryable condition.
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // transport error
		return true
	case 429:
		return true
	case 500, 502, 503, 504:
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
