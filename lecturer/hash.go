package lecturer

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashPassword returns the base64 encoding of the SHA-256 digest of
// plaintext. Deterministic and unsalted: the stored hash is only ever
// compared for equality, never reversed.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:])
}
