package auth

import (
	"errors"
	"strings"
)

var (
	ErrMissingToken   = errors.New("token not provided")
	ErrMalformedToken = errors.New("invalid token format")
)

const bearerScheme = "Bearer"

// ParseBearer extracts the token from an Authorization header value of the
// exact form "Bearer <token>".
func ParseBearer(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrMissingToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", ErrMalformedToken
	}
	return parts[1], nil
}

// FormatBearer prefixes token with the bearer scheme.
func FormatBearer(token string) string {
	return bearerScheme + " " + token
}
