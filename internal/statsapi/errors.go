package statsapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream failure classes the UI treats differently.
var (
	// ErrRateLimited means the upstream proxy answered 429.
	ErrRateLimited = errors.New("statsapi: rate limited")
	// ErrUnauthorized means the API key was rejected (401/403). The end
	// user only ever sees a generic "contact support" message for this.
	ErrUnauthorized = errors.New("statsapi: invalid credentials")
	// ErrMalformed means the body could not be decoded as the expected shape.
	ErrMalformed = errors.New("statsapi: malformed response")
)

// APIError is a non-200 upstream response that is not one of the sentinel classes.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("statsapi: upstream %d: %s", e.Status, e.Body)
}

// classifyStatus maps an HTTP status to the error taxonomy.
func classifyStatus(status int, body string) error {
	switch {
	case status == 429:
		return ErrRateLimited
	case status == 401 || status == 403:
		return ErrUnauthorized
	default:
		return &APIError{Status: status, Body: body}
	}
}
