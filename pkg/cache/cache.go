// Package cache stores resolved dependency trees between runs.
//
// Building a tree means running Maven, which takes seconds to minutes. The
// analysis itself is cheap, so the CLI caches the raw builder output keyed by
// the module POM, the parent POMs it inherits from and the resolution
// options. Editing any of those files produces a new key, so bumping a
// version in a parent's dependencyManagement rebuilds every child.
//
// [FileCache] is the only implementation; --no-cache passes no cache at all.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"
)

// DefaultTTL is how long a cached tree stays valid.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// TreeInputs is everything a resolved tree depends on.
type TreeInputs struct {
	// POM is the absolute path of the module POM.
	POM string `json:"pom"`
	// Lineage holds the module POM content followed by each ancestor POM
	// found on disk, nearest first.
	Lineage [][]byte `json:"-"`

	Scope   string `json:"scope,omitempty"`
	Offline bool   `json:"offline,omitempty"`
	Command string `json:"command,omitempty"`
	Builder string `json:"builder,omitempty"`
}

// TreeKey returns the cache key for the tree built from in, in the form
// "tree:<sha256>".
func TreeKey(in TreeInputs) string {
	h := sha256.New()
	opts, _ := json.Marshal(in)
	h.Write(opts)
	// Length prefixes keep the boundary between two files unambiguous.
	var n [8]byte
	for _, data := range in.Lineage {
		binary.BigEndian.PutUint64(n[:], uint64(len(data)))
		h.Write(n[:])
		h.Write(data)
	}
	return "tree:" + hex.EncodeToString(h.Sum(nil))
}
