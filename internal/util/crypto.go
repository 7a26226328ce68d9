package util

import (
	"crypto/rand"
	"encoding/base64"
)

const stateTokenBytes = 32

// GenerateStateToken returns a URL-safe random token with 32 bytes of entropy.
func GenerateStateToken() (string, error) {
	bytes := make([]byte, stateTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// Truncate shortens s to at most max runes. Counting runes rather than
// bytes keeps a multi-byte character at the boundary intact.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
