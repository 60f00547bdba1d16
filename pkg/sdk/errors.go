package radar

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/radar/internal/domain"
	gen "github.com/kailas-cloud/radar/internal/transport/generated"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSessionNotFound = domain.ErrSessionNotFound
	ErrItemNotFound    = domain.ErrItemNotFound
	ErrInvalidFix      = domain.ErrInvalidFix
	ErrInvalidPlayer   = domain.ErrInvalidPlayer
	ErrUnauthorized    = errors.New("unauthorized")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("radar: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap maps the error code onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch gen.ErrorResponseCode(e.Code) {
	case gen.ErrorResponseCodeInvalidFix:
		return ErrInvalidFix
	case gen.ErrorResponseCodeInvalidPlayer:
		return ErrInvalidPlayer
	case gen.ErrorResponseCodeUnauthorized:
		return ErrUnauthorized
	case gen.ErrorResponseCodeNotFound:
		if e.Message == domain.ErrItemNotFound.Error() {
			return ErrItemNotFound
		}
		return ErrSessionNotFound
	}
	return nil
}
