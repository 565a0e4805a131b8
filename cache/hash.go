// Package cache implements the incremental-build artifact store: a
// content-addressed file store, a per-file source hasher, and a
// version-gated manifest that detects file-level changes (§4.E).
package cache

import (
	"encoding/hex"
	"hash/fnv"
)

// ContentHash is a hex-encoded digest used both as a manifest comparison
// key and as the on-disk artifact filename stem.
type ContentHash string

// HashBytes digests arbitrary payload bytes.
func HashBytes(data []byte) ContentHash {
	h := fnv.New128a()
	h.Write(data)
	return ContentHash(hex.EncodeToString(h.Sum(nil)))
}
