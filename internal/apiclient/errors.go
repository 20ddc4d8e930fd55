package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ResponseError describes a failed backend call. StatusCode is zero when the
// request never produced a response.
type ResponseError struct {
	StatusCode int
	Method     string
	Path       string
	Body       []byte
	Err        error
}

func (e *ResponseError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s %s: %v", e.Method, e.Path, e.Err)
	}
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("api: %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Message returns the backend's error message. It reads the "error" or
// "message" field of a JSON payload, or the raw payload otherwise.
func (e *ResponseError) Message() string {
	if len(e.Body) == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(e.Body)
}

// Decode unmarshals the error payload into v.
func (e *ResponseError) Decode(v any) error {
	if len(e.Body) == 0 {
		return fmt.Errorf("api: %s %s: empty error payload", e.Method, e.Path)
	}
	return json.Unmarshal(e.Body, v)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var rerr *ResponseError
	if errors.As(err, &rerr) {
		return rerr.StatusCode
	}
	return 0
}
