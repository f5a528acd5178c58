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

// Package arena implements a bump-pointer allocator over a chain of
// fixed-size pages, with nested LIFO frames for bulk rollback. Unlike
// pool.Pool, an Arena never frees individual allocations; it only supports
// whole-arena disposal or frame-scoped rollback.
package arena

import (
	"unsafe"

	"github.com/google/uuid"

	"github.com/TheBadkraft/memarena/internal/addrcache"
	"github.com/TheBadkraft/memarena/internal/dbg"
	"github.com/TheBadkraft/memarena/internal/memaddr"
	"github.com/TheBadkraft/memarena/internal/page"
)

// Arena is a chain of pages used as a bump allocator. The zero value is not
// ready to use; call New.
type Arena struct {
	tag [4]byte
	id  uuid.UUID // debug-log correlation only; never touches allocator logic

	pages       *page.Page // head of the chain; most recently added page
	currentPage *page.Page
	pageCount   int

	frames *Frame // top of the frame stack; most nested frame

	cache *addrcache.Cache
}

// New creates an empty Arena with a single initial page.
func New() *Arena {
	a := &Arena{tag: memaddr.TagArena, id: uuid.New(), cache: addrcache.New()}
	a.growPage()
	return a
}

// Tag returns the 4-byte handle tag identifying this as an arena record.
func (a *Arena) Tag() [4]byte {
	return a.tag
}

// ID returns a per-arena identifier, stable for the arena's lifetime, used
// only to correlate dbg.Log lines from programs that juggle many arenas at
// once; it carries no allocator semantics.
func (a *Arena) ID() uuid.UUID {
	return a.id
}

func (a *Arena) logCtx() []any {
	return []any{"arena=%s", a.id}
}

func (a *Arena) growPage() *page.Page {
	pg := page.New(page.Size)
	pg.Next = a.pages
	a.pages = pg
	a.currentPage = pg
	a.pageCount++

	dbg.Log(a.logCtx(), "arena.grow", "pages=%d", a.pageCount)
	return pg
}

// Alloc bump-allocates size bytes from the current page, chaining a new
// page exactly once if the current page has insufficient room. Returns nil
// for a zero-byte request or for a request larger than one page (arenas do
// not support oversize allocations).
func (a *Arena) Alloc(size int, zero bool) unsafe.Pointer {
	if size == 0 || size > page.Size {
		return nil
	}

	if ptr := a.currentPage.Alloc(size, zero); ptr != nil {
		a.cache.Add(ptr)
		return ptr
	}

	a.growPage()
	ptr := a.currentPage.Alloc(size, zero)
	dbg.Assert(ptr != nil, "arena: Alloc failed on a freshly grown page")
	a.cache.Add(ptr)
	return ptr
}

// IsTracking reports whether ptr is a live allocation tracked by this
// arena (and not since rolled back by a frame or moved to another scope).
//
// Every page's tracker is scanned without a Contains filter: scope.Move
// records a pointer in the destination's current page tracker without
// relocating its bytes, so a tracker hit on a page that does not
// physically Contains(ptr) is still a legitimate positive.
func (a *Arena) IsTracking(ptr unsafe.Pointer) bool {
	if !a.cache.MayContain(ptr) {
		return false
	}
	for pg := a.pages; pg != nil; pg = pg.Next {
		found := false
		pg.Tracker().Each(func(_ int, v unsafe.Pointer) {
			if v == ptr {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return false
}

// Track registers ptr as tracked by this arena's current page. Used by the
// scope-move protocol when an object is transferred in from elsewhere; the
// object's bytes are not required to physically reside in this arena.
func (a *Arena) Track(ptr unsafe.Pointer) {
	a.currentPage.Tracker().Add(ptr)
	a.cache.Add(ptr)
}

// Untrack removes ptr from whichever page's tracker holds it. Returns
// false if no page in this arena is tracking ptr.
func (a *Arena) Untrack(ptr unsafe.Pointer) bool {
	for pg := a.pages; pg != nil; pg = pg.Next {
		tracker := pg.Tracker()
		removed := false
		tracker.Each(func(i int, v unsafe.Pointer) {
			if v == ptr {
				tracker.RemoveAt(i)
				removed = true
			}
		})
		if removed {
			a.cache.Remove(ptr)
			return true
		}
	}
	return false
}

// GetTotalAllocated sums Used across every page in the chain.
func (a *Arena) GetTotalAllocated() int {
	total := 0
	for pg := a.pages; pg != nil; pg = pg.Next {
		total += pg.Used()
	}
	return total
}

// BeginFrame pushes a new checkpoint onto this arena's frame stack,
// capturing the current page, its bump/used offsets, and its tracker's
// append high-water mark, and returns it. Ending the returned Frame rolls
// the arena back to this point.
//
// slotsStart is the tracker's Bound, not its Len: Len counts currently
// occupied slots and can be smaller than the true append frontier whenever
// an earlier Untrack (e.g. from a scope.Move out of this page) left a hole
// below it, and a count captured at a gap would let a rollback untrack a
// pre-frame entry instead of the frame's own.
func (a *Arena) BeginFrame() *Frame {
	f := &Frame{
		tag:        memaddr.TagFrame,
		arena:      a,
		startPage:  a.currentPage,
		startBump:  a.currentPage.Bump(),
		startUsed:  a.currentPage.Used(),
		slotsStart: a.currentPage.Tracker().Bound(),
		valid:      true,
		next:       a.frames,
	}
	a.frames = f

	dbg.Log(a.logCtx(), "arena.beginFrame", "bump=%d, slots=%d", f.startBump, f.slotsStart)
	return f
}

// EndFrame ends f, rolling its owning arena back to the state captured at
// BeginFrame. If f is not the top of the stack, every frame above it is
// implicitly ended first, most-nested-first, with a diagnostic. Ending an
// already-invalid frame is a silent no-op.
func (a *Arena) EndFrame(f *Frame) {
	if f == nil || !f.valid {
		return
	}
	if f.arena != a {
		dbg.Assert(false, "arena: EndFrame called with a frame belonging to a different arena")
		return
	}

	if a.frames != f {
		dbg.Warn("arena: EndFrame called out of order, draining inner frames first")
		for a.frames != nil && a.frames != f {
			a.endTop()
		}
	}
	if a.frames == f {
		a.endTop()
	}
}

// endTop ends whichever frame currently sits on top of the stack.
func (a *Arena) endTop() {
	f := a.frames
	if f == nil {
		return
	}
	a.frames = f.next

	// Only the start page is restored; pages chained while the frame was
	// open stay live, with their tracked allocations, until Dispose. See
	// DESIGN.md for this relaxation.
	pg := f.startPage
	pg.ResetBump(f.startBump, f.startUsed)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(pg.Data())))
	tracker := pg.Tracker()
	tracker.Each(func(i int, v unsafe.Pointer) {
		if i >= f.slotsStart {
			a.cache.Remove(v)
		} else if pg.Contains(v) && int(uintptr(v)-base) >= f.startBump {
			// An allocation this frame made into a pre-frame hole.
			a.cache.Remove(v)
			tracker.RemoveAt(i)
		}
	})
	tracker.RemoveFrom(f.slotsStart)

	f.valid = false
	f.next = nil

	dbg.Log(a.logCtx(), "arena.endFrame", "remaining=%p", f.startPage)
}

// Dispose destroys every page in this arena's chain. Frames still on the
// stack become invalid; using them afterwards is undefined.
func (a *Arena) Dispose() {
	for pg := a.pages; pg != nil; {
		next := pg.Next
		pg.Destroy()
		pg = next
	}
	for f := a.frames; f != nil; f = f.next {
		f.valid = false
	}
	a.pages = nil
	a.currentPage = nil
	a.frames = nil
	a.pageCount = 0
	a.cache.Reset()
}
