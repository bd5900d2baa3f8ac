package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const secretBytes = 32

// Generate returns a new URL-safe random secret together with its digest.
// Only the digest is ever persisted; the secret itself is handed to the
// candidate once and cannot be recovered afterwards.
func Generate() (secret string, digest string, err error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate booking secret: %w", err)
	}
	secret = base64.RawURLEncoding.EncodeToString(buf)
	return secret, Hash(secret), nil
}

// Hash returns the hex-encoded SHA-256 digest of a presented secret.
// The digest is deterministic so links can be looked up by it directly.
func Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
