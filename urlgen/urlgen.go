// Package urlgen generates random short codes.
package urlgen

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// charset defines the character set used for generating short codes.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrInvalidLength is returned when a non-positive length is requested.
var ErrInvalidLength = errors.New("short code length must be positive")

var charsetLength = big.NewInt(int64(len(charset)))

// Generate returns a code of exactly length characters, each drawn uniformly
// from [A-Za-z0-9] using crypto/rand.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	var sb strings.Builder
	sb.Grow(length)

	for i := 0; i < length; i++ {
		// rand.Int rejects out-of-range samples, so no modulo bias
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[randomIndex.Int64()])
	}
	return sb.String(), nil
}
