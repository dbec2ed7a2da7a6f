package connect

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorHttp is the error shape returned for any failed backend call: either
// the status and message parsed from the backend's error response, or a
// client-side failure mapped onto an http status.
type ErrorHttp struct {
	StatusCode int      `json:"code"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"` // backend error bodies carry an errors list
}

func (e *ErrorHttp) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("HTTP %d: %s: %v", e.StatusCode, e.Message, e.Errors)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a backend 404, eg a role or secret that
// does not exist.
func IsNotFound(err error) bool {
	var httpErr *ErrorHttp
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusNotFound
	}
	return false
}
