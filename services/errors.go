package services

import (
	"errors"
	"fmt"
)

// Outcomes surfaced to callers. Anything else that reaches the HTTP layer is
// wrapped in ErrInternal.
var (
	ErrValidation          = errors.New("validation failed")
	ErrEmailInUse          = errors.New("email already in use")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrShortURLNotFound    = errors.New("short URL not found")
	ErrGenerationExhausted = errors.New("could not generate a unique short code")
	ErrInternal            = errors.New("internal error")
)

// internalError hides a persistence failure behind ErrInternal. The cause is
// kept in the message for logging but is not reachable with errors.Is.
func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
