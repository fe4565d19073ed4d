package aiclient

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// BackendError is a non-success response from the AI backend.
type BackendError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("ai backend returned %d: %s", e.Status, e.Message)
}

// UnreachableError means the backend could not be contacted at all.
type UnreachableError struct {
	URL   string
	Cause error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("ai service is not reachable at %s: %v", e.URL, e.Cause)
}

func (e *UnreachableError) Unwrap() error {
	return e.Cause
}

// InvalidResponseError is a success status whose body does not have the
// expected shape.
type InvalidResponseError struct {
	Message string
}

func (e *InvalidResponseError) Error() string {
	return e.Message
}

// ErrorMessage extracts a display string from a backend error body: the
// "error" field, else "detail", else "message", else fallback.
func ErrorMessage(body []byte, fallback string) string {
	if !gjson.ValidBytes(body) {
		return fallback
	}
	for _, path := range []string{"error", "detail", "message"} {
		v := gjson.GetBytes(body, path)
		if !v.Exists() {
			continue
		}
		// FastAPI validation errors put a list under "detail".
		if v.IsArray() {
			if msg := v.Get("0.msg").String(); msg != "" {
				return msg
			}
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return fallback
}

// DisplayMessage turns any client error into the string shown to users.
func DisplayMessage(err error, fallback string) string {
	switch e := err.(type) {
	case *BackendError:
		return e.Message
	case *InvalidResponseError:
		return e.Message
	case *UnreachableError:
		return "AI service is not running"
	case nil:
		return ""
	default:
		if err.Error() == "" {
			return fallback
		}
		return err.Error()
	}
}
