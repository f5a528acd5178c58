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

package memarena

import (
	"unsafe"

	"github.com/TheBadkraft/memarena/arena"
	"github.com/TheBadkraft/memarena/config"
	"github.com/TheBadkraft/memarena/internal/dbg"
	"github.com/TheBadkraft/memarena/pool"
	"github.com/TheBadkraft/memarena/scope"
)

// heap is the process-wide default pool backing the unqualified
// Alloc/Free/Realloc below. It is lazily constructed with config.Default
// on first use, matching the source's constructor-at-program-start
// behavior without requiring an explicit call from every program; Init
// lets a caller override the defaults before that first use.
var heap *pool.Pool

// Init explicitly (re-)constructs the global heap from cfg. Calling it
// after the heap has already served an allocation discards whatever it
// held; most programs never need to call this and can rely on the
// lazily-constructed default instead.
func Init(cfg config.Config) {
	if heap != nil {
		heap.Dispose()
	}
	heap = pool.New(cfg.InitialPages, cfg.MinSparePages)
	if err := dbg.SetFilter(cfg.DebugFilter); err != nil {
		dbg.Warn("memarena.Init: invalid debug_filter %q: %v", cfg.DebugFilter, err)
	}
	dbg.Log(nil, "memarena.init", "pages=%d, minSpare=%d", cfg.InitialPages, cfg.MinSparePages)
}

func ensureHeap() *pool.Pool {
	if heap == nil {
		Init(config.Default())
	}
	return heap
}

// Teardown releases the global heap's backing pages. Optional; after
// calling it, any further top-level Alloc/Free/Realloc call re-initializes
// a fresh, empty heap rather than reusing stale state.
func Teardown() {
	if heap != nil {
		heap.Dispose()
		heap = nil
	}
}

// Alloc allocates size bytes from the global heap. Returns nil for a
// zero-byte request or if the system allocator is exhausted.
func Alloc(size int) unsafe.Pointer {
	ptr, err := ensureHeap().Alloc(size, false)
	if err != nil {
		dbg.Warn("memarena.Alloc: %v", err)
		return nil
	}
	return ptr
}

// AllocZeroed is Alloc followed by a zero-fill of the returned payload.
func AllocZeroed(size int) unsafe.Pointer {
	ptr, err := ensureHeap().Alloc(size, true)
	if err != nil {
		dbg.Warn("memarena.AllocZeroed: %v", err)
		return nil
	}
	return ptr
}

// Free releases ptr back to the global heap. Freeing nil is a no-op.
func Free(ptr unsafe.Pointer) {
	ensureHeap().Free(ptr)
}

// Realloc resizes the allocation at ptr to n bytes, preserving
// min(old size, n) bytes of content and returning the new pointer. A nil
// ptr behaves as Alloc(n); n == 0 behaves as Free(ptr) and returns nil.
// Data is always preserved across a move; growth is never in place.
func Realloc(ptr unsafe.Pointer, n int) unsafe.Pointer {
	h := ensureHeap()

	if ptr == nil {
		return Alloc(n)
	}
	if n == 0 {
		h.Free(ptr)
		return nil
	}

	newPtr, err := h.Alloc(n, false)
	if err != nil {
		dbg.Warn("memarena.Realloc: %v", err)
		return nil
	}

	oldSize := h.AllocSize(ptr)
	keep := min(oldSize, n)
	if keep > 0 {
		copy(unsafe.Slice((*byte)(newPtr), keep), unsafe.Slice((*byte)(ptr), keep))
	}
	h.Free(ptr)
	return newPtr
}

// HeapStats reports the global heap's current byte accounting.
type HeapStats struct {
	TotalBytes int
	UsedBytes  int
	PageCount  int
}

// Stats returns a snapshot of the global heap's current byte accounting.
func Stats() HeapStats {
	h := ensureHeap()
	return HeapStats{TotalBytes: h.TotalBytes(), UsedBytes: h.UsedBytes(), PageCount: h.PageCount()}
}

// NewArena creates a fresh, independent arena. The global heap façade acts
// as the arena factory referenced in SPEC_FULL.md §2; arenas themselves
// hold their own pages and are never backed by the global pool.
func NewArena() *arena.Arena {
	return arena.New()
}

// Move is a façade convenience for scope.Move, so callers that only
// imported the top-level memarena package can still transfer ownership
// between two arenas or frames without a second import.
func Move(from, to scope.Scope, obj unsafe.Pointer) error {
	return scope.Move(from, to, obj)
}
