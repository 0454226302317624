// Package cache provides a content-addressed cache from the raw bytes of a
// Statechart Tree JSON payload to its already-synthesized Microstep Program,
// so a CLI invocation never re-synthesizes an input it has already compiled.
// Adapted from the teacher's internal/core/registry.go snapshot-versioning
// idea, generalized from "named machine -> versions" to "content hash ->
// compiled program" since this compiler has no notion of a named machine.
package cache

import (
	"encoding/hex"
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/comalice/microstepc/internal/microstep"
)

// ErrNotFound mirrors the teacher's registry.ErrNotFound sentinel.
var ErrNotFound = errors.New("cache: no compiled program for this input")

// Key is a BLAKE2b-256 digest of an input's raw bytes, hex-encoded. The input
// is not canonicalized, so two payloads that differ only in whitespace or key
// order get different keys.
type Key string

// KeyOf hashes raw input bytes into a cache Key.
func KeyOf(input []byte) Key {
	sum := blake2b.Sum256(input)
	return Key(hex.EncodeToString(sum[:]))
}

// Cache is an insertion-ordered, in-memory compile cache. Ordering is
// deterministic (matches spec §8's determinism property: identical input
// yields identical output, never a different cached entry) which is what
// makes a `--cache` debug listing stable across runs with the same inputs.
type Cache struct {
	entries *orderedmap.OrderedMap[Key, *microstep.Program]
}

// New constructs an empty compile cache.
func New() *Cache {
	return &Cache{entries: orderedmap.New[Key, *microstep.Program]()}
}

// Get returns the cached program for key, or ErrNotFound.
func (c *Cache) Get(key Key) (*microstep.Program, error) {
	if p, ok := c.entries.Get(key); ok {
		return p, nil
	}
	return nil, ErrNotFound
}

// Put records the program compiled from key's input, first-write-wins: a
// second Put for the same key is a no-op since the compiler is deterministic
// and the second result would be structurally identical anyway.
func (c *Cache) Put(key Key, program *microstep.Program) {
	if _, exists := c.entries.Get(key); exists {
		return
	}
	c.entries.Set(key, program)
}

// Keys returns cache keys in insertion order, for `--cache` debug listings.
func (c *Cache) Keys() []Key {
	keys := make([]Key, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return c.entries.Len() }
