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

// Package page implements the fixed-capacity backing region shared by both
// the free-list Pool and the bump-allocating Arena. A Page owns one
// contiguous []byte buffer obtained from the system allocator hooks
// (package sysalloc); everything built on top of it — block headers for the
// pool, a bump pointer and slot-array tracker for the arena — lives inside
// that buffer or alongside it.
package page

import (
	"unsafe"

	"github.com/TheBadkraft/memarena/internal/dbg"
	"github.com/TheBadkraft/memarena/internal/memaddr"
	"github.com/TheBadkraft/memarena/internal/slotarray"
	"github.com/TheBadkraft/memarena/internal/sysalloc"
)

// Size is the fixed page capacity: 4 KiB of payload bytes. Not configurable
// at runtime.
const Size = 4096

// Page is a fixed-capacity byte region with a bump pointer and a slot-array
// tracker of the allocations made from it by an Arena. A Pool uses only the
// raw buffer (via Data) and manages its own block headers directly inside
// it, ignoring the bump/tracker fields entirely.
type Page struct {
	data []byte

	// Next links pages into a chain. Arena chains are newest-first; Pool
	// does not use Next and keeps its pages in a slice instead.
	Next *Page

	bump      int
	used      int
	tracker   *slotarray.SlotArray[unsafe.Pointer]
	destroyed bool
}

// New creates a page with the given capacity, backed by a freshly acquired
// system buffer. bump starts at the beginning of the data region and the
// tracker starts empty.
func New(capacity int) *Page {
	return &Page{
		data:    sysalloc.Current().Calloc(capacity),
		tracker: slotarray.New[unsafe.Pointer](8),
	}
}

// Capacity returns the total number of payload bytes this page can hold.
func (p *Page) Capacity() int {
	return len(p.data)
}

// Used returns the number of bytes currently bump-allocated from this page.
func (p *Page) Used() int {
	return p.used
}

// Data returns the page's raw backing buffer. Used by Pool, which manages
// its own block headers directly inside this buffer instead of going
// through Alloc.
func (p *Page) Data() []byte {
	return p.data
}

// base returns the address of the first byte of this page's buffer.
func (p *Page) base() unsafe.Pointer {
	return unsafe.Pointer(memaddr.BasePtr(p.data).Ptr())
}

// Alloc bump-allocates size bytes from this page and registers the
// resulting pointer in the page's tracker. If zero is true, the payload is
// zero-filled (memory from sysalloc.Calloc already is, but this also
// re-zeroes memory that frame rollback has made available for reuse).
// Returns nil if size exceeds the remaining capacity. A zero-byte request
// succeeds, returning a valid in-range pointer without advancing used or
// registering anything in the tracker (there is nothing to track).
func (p *Page) Alloc(size int, zero bool) unsafe.Pointer {
	if p.destroyed {
		dbg.Assert(false, "page: Alloc called on a destroyed page")
		return nil
	}
	if size == 0 {
		return unsafe.Add(p.base(), p.bump)
	}
	if size > p.Capacity()-p.used {
		return nil
	}

	ptr := unsafe.Add(p.base(), p.bump)
	if zero {
		clear(p.data[p.bump : p.bump+size])
	}
	p.bump += size
	p.used += size

	p.tracker.Add(ptr)
	dbg.Log(nil, "page.Alloc", "%p, size=%d, used=%d/%d", ptr, size, p.used, p.Capacity())
	return ptr
}

// Contains reports whether ptr lies within this page's [data, data+capacity)
// range.
func (p *Page) Contains(ptr unsafe.Pointer) bool {
	if len(p.data) == 0 {
		return false
	}
	return memaddr.Contains(memaddr.BasePtr(p.data), len(p.data), ptr)
}

// Tracker exposes the page's allocation tracker, used by Arena for
// Track/Untrack/IsTracking and for frame rollback bookkeeping.
func (p *Page) Tracker() *slotarray.SlotArray[unsafe.Pointer] {
	return p.tracker
}

// ResetBump restores the bump pointer and used counter to the given
// values, without touching the tracker. Used by Arena.EndFrame to roll a
// frame's start page back to its captured state; the tracker truncation is
// handled separately via Tracker().RemoveFrom.
func (p *Page) ResetBump(bump, used int) {
	dbg.Assert(bump <= p.Capacity() && used <= p.Capacity(), "page: ResetBump out of range")
	p.bump = bump
	p.used = used
}

// Bump returns the current bump offset, for frame-begin snapshots.
func (p *Page) Bump() int {
	return p.bump
}

// Destroy releases the page's backing buffer to the system allocator. Per
// I-PG3, a destroyed page is never mutated again; any further Alloc call on
// it is a programmer error caught by the debug assertion in Alloc. The
// tracker's entries are not individually freed, since they were
// bump-allocated within this page's own buffer.
func (p *Page) Destroy() {
	if p.destroyed {
		return
	}
	sysalloc.Current().Free(p.data)
	p.destroyed = true
	p.data = nil
	p.tracker = nil
}
