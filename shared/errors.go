package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// UnknownErrorCode is used when the server's failure payload carries no code.
const UnknownErrorCode = "UNKNOWN_ERROR"

// APIError is the normalized failure shape for upstream API exchanges. It
// carries the HTTP status, the server-supplied error code and message, and
// the raw response payload for callers that need it.
type APIError struct {
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d:%s] %s", e.Status, e.Code, e.Message)
}

// NewAPIError builds an APIError with the defaults the response pipeline
// expects: UNKNOWN_ERROR when no code is supplied, "HTTP <status>" when no
// message is supplied.
func NewAPIError(status int, code, message string, payload json.RawMessage) *APIError {
	if code == "" {
		code = UnknownErrorCode
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
		Payload: payload,
	}
}

// RetryableStatus reports whether a failing HTTP status is worth another
// attempt. Client errors [400,500) are final; server errors are transient.
func RetryableStatus(status int) bool {
	return status < http.StatusBadRequest || status >= http.StatusInternalServerError
}

// IsRetryable classifies an error for the retry loop. API failures are
// decided by status; anything else is a transport-level failure (connection
// refused, timeout, DNS) and is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return RetryableStatus(apiErr.Status)
	}
	return true
}
