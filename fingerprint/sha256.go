package fingerprint

import (
	"crypto/sha256"
	"fmt"
)

// SHA256 calculates and returns a SHA-256 hash intended to be used for a fingerprint of the original data
func SHA256(data string) string {
	return fmt.Sprintf("%x", BytesToSha256([]byte(data)))
}

func BytesToSha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// Short is the first 12 hex digits of the SHA-256, enough to tell rendered artifacts apart in logs.
func Short(data string) string {
	return SHA256(data)[:12]
}
