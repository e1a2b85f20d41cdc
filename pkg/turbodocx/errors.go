package turbodocx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the base error for any non-2xx API response that does not
// map to a more specific type. It carries the HTTP status code and the
// server's application error code when one was returned.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("turbodocx: %s (status %d, code %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("turbodocx: %s (status %d)", e.Message, e.StatusCode)
}

// ClientValidationError reports malformed or missing input detected
// before any network call. Requests that fail this way never reach the
// server, so no partial server-side effect is possible.
type ClientValidationError struct {
	Message string
}

func (e *ClientValidationError) Error() string {
	return "turbodocx: " + e.Message
}

// ValidationError is returned for HTTP 400 responses.
type ValidationError struct {
	APIError
}

// AuthenticationError is returned for HTTP 401 responses, or when
// credentials are missing or unusable at client construction.
type AuthenticationError struct {
	APIError
}

// NotFoundError is returned for HTTP 404 responses.
type NotFoundError struct {
	APIError
}

// RateLimitError is returned for HTTP 429 responses.
type RateLimitError struct {
	APIError
}

// NetworkError reports a transport-level failure: an unreachable host, a
// body that could not be read or decoded, or a failed presigned-URL
// download. It is distinct from the API error taxonomy because the
// failure did not come from a documented API response.
type NetworkError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("turbodocx: %s (status %d)", e.Message, e.StatusCode)
	}
	return "turbodocx: " + e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func clientValidationErrorf(format string, args ...interface{}) *ClientValidationError {
	return &ClientValidationError{Message: fmt.Sprintf(format, args...)}
}

func networkErrorf(err error, format string, args ...interface{}) *NetworkError {
	return &NetworkError{Message: fmt.Sprintf(format, args...), Err: err}
}

// mapStatusError converts a non-2xx response into a typed error. The
// message is extracted from the body's "message" field, falling back to
// "error" and then to the HTTP status text; "code" is optional.
func mapStatusError(statusCode int, body []byte) error {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	// Best effort; a non-JSON error body still maps by status code.
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	base := APIError{Message: msg, StatusCode: statusCode, Code: parsed.Code}
	switch statusCode {
	case http.StatusBadRequest:
		return &ValidationError{APIError: base}
	case http.StatusUnauthorized:
		return &AuthenticationError{APIError: base}
	case http.StatusNotFound:
		return &NotFoundError{APIError: base}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError: base}
	default:
		return &base
	}
}
