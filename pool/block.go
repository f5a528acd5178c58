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

package pool

import (
	"unsafe"

	"github.com/TheBadkraft/memarena/internal/memaddr"
	"github.com/TheBadkraft/memarena/internal/page"
)

// block is the header that precedes every allocation made from a Pool.
// It lives directly inside a Page's backing buffer: the payload pointer
// handed back to callers is always header + headerSize bytes past the
// start of a block. Free blocks form a doubly-linked, address-sorted list
// via next/prev; an allocated block has both set to nil.
//
// The pointer-typed prev/next/pg fields are safe to store in the page's
// otherwise pointer-free backing array: the objects they reference (other
// blocks, and the owning Page) are independently kept alive by the Pool's
// own page slice for as long as that page has not been released back to
// the system allocator, and Go's garbage collector does not relocate
// heap-allocated slice backing arrays.
type block struct {
	size      int
	next      *block
	prev      *block
	pg        *page.Page
	allocSize int
}

// headerSize is the number of bytes a block header occupies, already a
// multiple of the pool's 8-byte alignment on every platform this module
// targets.
const headerSize = int(unsafe.Sizeof(block{}))

// blockAt overlays a block header onto the page buffer at byte offset off.
func blockAt(pg *page.Page, off int) *block {
	return memaddr.Cast[block](pg.Data(), off)
}

// addr returns b's own address, used for address-ordered free-list
// insertion and adjacency checks.
func (b *block) addr() uintptr {
	return uintptr(unsafe.Pointer(b))
}

// end returns the address one past the end of b (header + payload).
func (b *block) end() uintptr {
	return b.addr() + uintptr(b.size)
}

// payload returns the user-visible pointer for an allocated block.
func (b *block) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), headerSize)
}

// blockFromPayload recovers the header preceding a payload pointer
// previously returned by payload().
func blockFromPayload(ptr unsafe.Pointer) *block {
	return (*block)(unsafe.Add(ptr, -headerSize))
}

// isWholePage reports whether b spans its entire owning page as a single
// block, i.e. it is the whole page currently sitting idle in the free
// list.
func (b *block) isWholePage() bool {
	return b.size == b.pg.Capacity()
}
