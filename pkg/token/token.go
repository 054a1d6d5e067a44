package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n
// The string only holds URL-safe base64 characters.
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	// base64 increases size by ~33%
	b := make([]byte, base64.RawURLEncoding.DecodedLen(n)+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
