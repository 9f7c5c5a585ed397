// Package cache stores rendered classification responses so repeated uploads
// of the same list are served without re-partitioning.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// BatchKey generates a cache key from a raw uploaded batch payload. Two
// byte-identical uploads share a key; normalization differences do not
// matter because the cached value is the rendered response.
func BatchKey(payload []byte) string {
	hash := sha256.Sum256(payload)
	return "almagraph:v1:" + hex.EncodeToString(hash[:])
}
