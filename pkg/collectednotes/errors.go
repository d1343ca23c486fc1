package collectednotes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors raised before any network I/O happens.
var (
	// ErrNoCredentials is returned when an authenticated endpoint is called
	// on a client built with NewPublicClient.
	ErrNoCredentials = errors.New("collectednotes: credentials required for this endpoint")
)

// ValidationError reports client-side rejection of an input before any
// request is made. Distinguishable from transport and API failures via
// errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("collectednotes: invalid %s: %s", e.Field, e.Reason)
}

// validateNoteBody enforces the rule the service relies on to derive a
// title and URL slug: every note body starts with a markdown h1 heading.
func validateNoteBody(body string) error {
	if !strings.HasPrefix(body, "# ") {
		return &ValidationError{
			Field:  "body",
			Reason: `note body must start with a markdown heading ("# ")`,
		}
	}
	return nil
}

// APIError is a non-2xx response from the service. The body is kept raw
// because error payloads are not guaranteed to be structured.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("collectednotes: API error (HTTP %d): %s", e.StatusCode, e.Body)
}

// IsClientError returns true for 4xx HTTP status codes.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func readAPIError(resp *http.Response) *APIError {
	body, readErr := io.ReadAll(resp.Body)
	bodyStr := string(body)
	if readErr != nil {
		bodyStr += fmt.Sprintf(" (body read error: %v)", readErr)
	}
	return &APIError{StatusCode: resp.StatusCode, Body: bodyStr}
}
