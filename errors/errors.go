package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
)

// NetworkError is the single error type returned by the request manager.
type NetworkError struct {
	// Code classifies the error.
	Code Code
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Body is the raw response body for status and decoding failures.
	Body []byte
	// Message is an optional human-readable detail.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("wirekit: %s (HTTP %d)", e.Code, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("wirekit: %s: %s", e.Code, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("wirekit: %s: %v", e.Code, e.Cause)
	default:
		return fmt.Sprintf("wirekit: %s", e.Code)
	}
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Generic wraps a transport failure that has no dedicated code.
func Generic(cause error) *NetworkError {
	return &NetworkError{Code: CodeGeneric, Cause: cause}
}

// NoConnectivity creates a no-connectivity error.
func NoConnectivity(cause error) *NetworkError {
	return &NetworkError{Code: CodeNoConnectivity, Cause: cause}
}

// TimedOut creates a timeout error.
func TimedOut(cause error) *NetworkError {
	return &NetworkError{Code: CodeTimedOut, Cause: cause}
}

// EncodingFailed creates an encoding error.
func EncodingFailed(cause error) *NetworkError {
	return &NetworkError{Code: CodeEncodingFailed, Cause: cause}
}

// InvalidResponse creates an invalid-server-response error.
func InvalidResponse(msg string) *NetworkError {
	return &NetworkError{Code: CodeInvalidResponse, Message: msg}
}

// Forbidden creates a 403 error.
func Forbidden(body []byte) *NetworkError {
	return &NetworkError{Code: CodeForbidden, StatusCode: http.StatusForbidden, Body: body}
}

// NotFound creates a 404 error.
func NotFound(body []byte) *NetworkError {
	return &NetworkError{Code: CodeNotFound, StatusCode: http.StatusNotFound, Body: body}
}

// ClientError creates an error for a 4xx status other than 403 and 404.
func ClientError(statusCode int, body []byte) *NetworkError {
	return &NetworkError{Code: CodeClientError, StatusCode: statusCode, Body: body}
}

// ServerError creates an error for a 5xx status.
func ServerError(statusCode int, body []byte) *NetworkError {
	return &NetworkError{Code: CodeServerError, StatusCode: statusCode, Body: body}
}

// DecodingFailed creates a decoding error carrying the raw body for diagnostics.
func DecodingFailed(raw []byte, cause error) *NetworkError {
	return &NetworkError{Code: CodeDecodingFailed, Body: raw, Cause: cause}
}

// ClassifyStatus converts an HTTP status code into a NetworkError.
// Returns nil for statuses that should proceed to decoding (1xx, 2xx, 3xx).
func ClassifyStatus(statusCode int, body []byte) *NetworkError {
	switch {
	case statusCode == http.StatusForbidden:
		return Forbidden(body)
	case statusCode == http.StatusNotFound:
		return NotFound(body)
	case statusCode >= 400 && statusCode <= 499:
		return ClientError(statusCode, body)
	case statusCode >= 500 && statusCode <= 599:
		return ServerError(statusCode, body)
	default:
		return nil
	}
}

// FromTransport translates a transport failure into a NetworkError.
// Not-connected and timed-out map to their dedicated codes, every other
// failure becomes Generic with the failure kept as cause.
func FromTransport(err error) *NetworkError {
	if err == nil {
		return nil
	}
	var ne *NetworkError
	if stderrors.As(err, &ne) {
		return ne
	}
	var tf *TransportFailure
	if stderrors.As(err, &tf) {
		switch tf.Kind {
		case KindNotConnected:
			return NoConnectivity(tf)
		case KindTimedOut:
			return TimedOut(tf)
		}
	}
	return Generic(err)
}

// CodeOf returns the code of a NetworkError in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *NetworkError
	if stderrors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// As returns the NetworkError in err's chain, if any.
func As(err error) (*NetworkError, bool) {
	var e *NetworkError
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func hasCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsGeneric checks if an error is a generic transport error.
func IsGeneric(err error) bool { return hasCode(err, CodeGeneric) }

// IsNoConnectivity checks if an error is a no-connectivity error.
func IsNoConnectivity(err error) bool { return hasCode(err, CodeNoConnectivity) }

// IsTimedOut checks if an error is a timeout error.
func IsTimedOut(err error) bool { return hasCode(err, CodeTimedOut) }

// IsEncodingFailed checks if an error is an encoding error.
func IsEncodingFailed(err error) bool { return hasCode(err, CodeEncodingFailed) }

// IsInvalidResponse checks if an error is an invalid-server-response error.
func IsInvalidResponse(err error) bool { return hasCode(err, CodeInvalidResponse) }

// IsForbidden checks if an error is a 403 error.
func IsForbidden(err error) bool { return hasCode(err, CodeForbidden) }

// IsNotFound checks if an error is a 404 error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsClientError checks if an error is a generic 4xx error.
func IsClientError(err error) bool { return hasCode(err, CodeClientError) }

// IsServerError checks if an error is a 5xx error.
func IsServerError(err error) bool { return hasCode(err, CodeServerError) }

// IsDecodingFailed checks if an error is a decoding error.
func IsDecodingFailed(err error) bool { return hasCode(err, CodeDecodingFailed) }

// IsConnectivityClass checks if no HTTP response was obtained for the call.
func IsConnectivityClass(err error) bool {
	c, ok := CodeOf(err)
	return ok && c.IsConnectivity()
}

// Equal reports whether two errors describe the same outcome: same code,
// status and body. Causes are compared with errors.Is for generic errors.
func Equal(a, b error) bool {
	ea, okA := As(a)
	eb, okB := As(b)
	if !okA || !okB {
		return a == b
	}
	if ea.Code != eb.Code || ea.StatusCode != eb.StatusCode || !bytes.Equal(ea.Body, eb.Body) {
		return false
	}
	if ea.Code == CodeGeneric {
		return stderrors.Is(ea.Cause, eb.Cause) || stderrors.Is(eb.Cause, ea.Cause)
	}
	return true
}
