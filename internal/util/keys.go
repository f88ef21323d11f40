package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Namespaced returns the storage key for a logical key under prefix.
func Namespaced(prefix, key string) string {
	return prefix + key
}

// Redact returns a short, stable fingerprint of key (first 8 bytes of SHA-256,
// hex) for logs and metrics labels.
func Redact(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
