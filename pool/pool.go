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

// Package pool implements a free-list allocator over fixed-size pages, with
// first-fit search, block splitting, and eager left/right coalescing on
// free. It is the allocator backing the global heap façade and is also
// usable standalone wherever arbitrary alloc/free order is needed (unlike
// an Arena, which only supports bulk disposal or frame rollback).
package pool

import (
	"unsafe"

	"github.com/TheBadkraft/memarena/internal/allocerr"
	"github.com/TheBadkraft/memarena/internal/dbg"
	"github.com/TheBadkraft/memarena/internal/memaddr"
	"github.com/TheBadkraft/memarena/internal/page"
)

// tag is the handle tag for Pool records; kept for the defensive byte-level
// invariant described in SPEC_FULL.md §3, even though Pool does not
// participate in the Scope protocol (see DESIGN.md, "Pool-to-arena
// transfer").
var tag [4]byte = memaddr.TagPool

// HeaderSize is the number of payload bytes a block header consumes on top
// of every allocation's requested size, exported so callers (and tests)
// reasoning about how large a single-page allocation can be don't have to
// guess at alignment internals.
const HeaderSize = headerSize

// Pool is a free-list allocator. The zero value is not ready to use; call
// New.
type Pool struct {
	tagBytes [4]byte // handle tag, see tag above; mirrored defensively in Tag().

	pages         []*page.Page
	freeHead      *block
	totalBytes    int
	usedBytes     int
	minSparePages int
}

// New creates a Pool pre-populated with initialPages pages (at least one).
// minSparePages controls how many fully-free pages Free will keep around
// before releasing one back to the system allocator.
func New(initialPages, minSparePages int) *Pool {
	if initialPages < 1 {
		initialPages = 1
	}
	if minSparePages < 0 {
		minSparePages = 0
	}

	p := &Pool{minSparePages: minSparePages, tagBytes: tag}
	for range initialPages {
		p.growByOnePage()
	}
	return p
}

// Tag returns the 4-byte handle tag identifying this as a pool record.
func (p *Pool) Tag() [4]byte {
	return p.tagBytes
}

// TotalBytes returns the total backing capacity currently held by this
// pool, across every page.
func (p *Pool) TotalBytes() int {
	return p.totalBytes
}

// UsedBytes returns the number of bytes currently charged to live
// allocations. Always <= TotalBytes (I-P2).
func (p *Pool) UsedBytes() int {
	return p.usedBytes
}

// PageCount returns the number of pages this pool currently holds.
func (p *Pool) PageCount() int {
	return len(p.pages)
}

func (p *Pool) growByOnePage() *page.Page {
	pg := page.New(page.Size)
	p.pages = append(p.pages, pg)
	p.totalBytes += pg.Capacity()

	whole := blockAt(pg, 0)
	*whole = block{size: pg.Capacity(), pg: pg}
	p.insertFree(whole)

	dbg.Log(nil, "pool.grow", "pages=%d, total=%d", len(p.pages), p.totalBytes)
	return pg
}

// insertFree links b into the address-sorted free list.
func (p *Pool) insertFree(b *block) {
	if p.freeHead == nil || b.addr() < p.freeHead.addr() {
		b.next = p.freeHead
		b.prev = nil
		if p.freeHead != nil {
			p.freeHead.prev = b
		}
		p.freeHead = b
		return
	}

	cur := p.freeHead
	for cur.next != nil && cur.next.addr() < b.addr() {
		cur = cur.next
	}
	b.next = cur.next
	b.prev = cur
	if cur.next != nil {
		cur.next.prev = b
	}
	cur.next = b
}

// unlinkFree removes b from the free list without touching its payload.
func (p *Pool) unlinkFree(b *block) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		p.freeHead = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	}
	b.next, b.prev = nil, nil
}

func (p *Pool) firstFit(total int) *block {
	for b := p.freeHead; b != nil; b = b.next {
		if b.size >= total {
			return b
		}
	}
	return nil
}

// Alloc allocates size bytes (the user payload; a block header is added on
// top and the result aligned to memaddr.Align). If zero is true, the
// payload is zero-filled before being returned. Returns (nil, nil) for a
// zero-byte request, (nil, allocerr.ErrOverflow) if the size arithmetic
// would wrap, (nil, allocerr.ErrTooLarge) if no single page could ever
// satisfy the request, and otherwise the payload pointer.
func (p *Pool) Alloc(size int, zero bool) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	if size < 0 {
		return nil, allocerr.ErrOverflow
	}

	total, err := memaddr.AlignUp(size + headerSize)
	if err != nil {
		return nil, allocerr.ErrOverflow
	}
	if total > page.Size {
		return nil, allocerr.ErrTooLarge
	}

	b := p.firstFit(total)
	if b == nil {
		p.growByOnePage()
		b = p.firstFit(total)
		if b == nil {
			// Every page, including the fresh one, failed to host a
			// block this size; cannot happen given the ErrTooLarge
			// guard above, but fail safely rather than panic.
			return nil, allocerr.ErrOutOfMemory
		}
	}

	p.unlinkFree(b)

	remainder := b.size - total
	if remainder >= headerSize {
		split := (*block)(unsafe.Add(unsafe.Pointer(b), total))
		*split = block{size: remainder, pg: b.pg}
		p.insertFree(split)
		b.size = total
	}

	b.allocSize = size
	p.usedBytes += b.size - headerSize

	if zero {
		clear(unsafe.Slice((*byte)(b.payload()), size))
	}

	dbg.Log(nil, "pool.alloc", "%p, size=%d/%d, used=%d/%d", b.payload(), size, total, p.usedBytes, p.totalBytes)
	return b.payload(), nil
}

// AllocSize returns the originally requested payload size for a pointer
// still live in this pool, or 0 for nil. Used by the global façade's
// Realloc to know how many bytes to preserve across a move.
func (p *Pool) AllocSize(ptr unsafe.Pointer) int {
	if ptr == nil {
		return 0
	}
	return blockFromPayload(ptr).allocSize
}

// Free releases a pointer previously returned by Alloc. Freeing nil is a
// silent no-op. Freeing a pointer not obtained from this pool is undefined
// behavior, per spec.
func (p *Pool) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	b := blockFromPayload(ptr)
	clear(unsafe.Slice((*byte)(b.payload()), b.size-headerSize))

	p.usedBytes -= b.size - headerSize
	b.allocSize = 0

	p.insertFree(b)
	b = p.coalesce(b)

	dbg.Log(nil, "pool.free", "%p, used=%d/%d", ptr, p.usedBytes, p.totalBytes)

	if b.isWholePage() && p.freeFullPageCount() > p.minSparePages {
		p.releasePage(b)
	}
}

// coalesce merges b with an address-adjacent free neighbor on either side,
// within the same page, and returns the (possibly different) block that
// now represents the merged region.
func (p *Pool) coalesce(b *block) *block {
	if next := b.next; next != nil && b.end() == next.addr() && b.pg == next.pg {
		p.unlinkFree(next)
		b.size += next.size
	}
	if prev := b.prev; prev != nil && prev.end() == b.addr() && prev.pg == b.pg {
		p.unlinkFree(b)
		prev.size += b.size
		b = prev
	}
	return b
}

// freeFullPageCount returns how many pages currently sit in the free list
// as a single, whole-page free block.
func (p *Pool) freeFullPageCount() int {
	n := 0
	for b := p.freeHead; b != nil; b = b.next {
		if b.isWholePage() {
			n++
		}
	}
	return n
}

// releasePage returns a fully-free page to the system allocator.
func (p *Pool) releasePage(b *block) {
	pg := b.pg
	p.unlinkFree(b)

	for i, existing := range p.pages {
		if existing == pg {
			p.pages = append(p.pages[:i], p.pages[i+1:]...)
			break
		}
	}
	p.totalBytes -= pg.Capacity()
	pg.Destroy()

	dbg.Log(nil, "pool.release", "pages=%d, total=%d", len(p.pages), p.totalBytes)
}

// Dispose releases every page this pool holds back to the system
// allocator. The pool must not be used afterwards.
func (p *Pool) Dispose() {
	for _, pg := range p.pages {
		pg.Destroy()
	}
	p.pages = nil
	p.freeHead = nil
	p.totalBytes = 0
	p.usedBytes = 0
}
