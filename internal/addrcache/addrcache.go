// Copyright 2020-2026 The memarena Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package addrcache is a fast, approximate membership pre-filter for
// Arena.IsTracking, hashed with github.com/dolthub/maphash the same way
// flier-goutil's swiss.Map hashes its keys. It is purely an optimization:
// a negative answer here is certain (the address was never added, or was
// removed since), but a positive answer only means "probably, go check the
// authoritative per-page tracker" since hash counts collapse on collision.
// Arena never returns a cache answer directly; it always falls back to
// scanning pages when the cache says maybe.
package addrcache

import (
	"unsafe"

	"github.com/dolthub/maphash"
)

// Cache counts how many tracked addresses hash to each bucket. Removing an
// address decrements its bucket rather than deleting unconditionally, so
// two different addresses sharing a hash don't let one's removal evict the
// other's presence.
type Cache struct {
	hasher maphash.Hasher[uintptr]
	counts map[uint64]int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		hasher: maphash.NewHasher[uintptr](),
		counts: make(map[uint64]int),
	}
}

// Add records ptr as tracked.
func (c *Cache) Add(ptr unsafe.Pointer) {
	c.counts[c.hash(ptr)]++
}

// Remove records ptr as no longer tracked.
func (c *Cache) Remove(ptr unsafe.Pointer) {
	h := c.hash(ptr)
	if n := c.counts[h]; n <= 1 {
		delete(c.counts, h)
	} else {
		c.counts[h] = n - 1
	}
}

// MayContain reports whether ptr could possibly be tracked. False is
// authoritative; true requires confirmation against the real tracker.
func (c *Cache) MayContain(ptr unsafe.Pointer) bool {
	return c.counts[c.hash(ptr)] > 0
}

// Reset clears every recorded address.
func (c *Cache) Reset() {
	clear(c.counts)
}

func (c *Cache) hash(ptr unsafe.Pointer) uint64 {
	return c.hasher.Hash(uintptr(ptr))
}
