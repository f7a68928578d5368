// Package cache provides TTL caching for fetched feeds and transcripts.
// All state is owned explicitly by a Cache value; there is no package-level
// mutable state.
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

// Key derives a cache key from a resource kind and identifier, e.g.
// ("feed", channelID) or ("transcript", videoID).
func Key(kind, id string) string {
	hash := sha256.Sum256([]byte(kind + ":" + id))
	return "sparksmetrics:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
