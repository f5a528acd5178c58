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

package arena

import "github.com/TheBadkraft/memarena/internal/page"

// Frame is a LIFO checkpoint inside an Arena. Ending a Frame rolls the
// arena's bump pointer and tracked-allocation count back to the values
// captured when the frame began. Frames nest: ending an outer frame while
// an inner one is still open implicitly ends the inner frame first.
//
// A Frame is created by Arena.BeginFrame and is only ever valid for the
// arena that created it.
type Frame struct {
	tag [4]byte

	arena     *Arena
	startPage *page.Page
	startBump int
	startUsed int
	// slotsStart is startPage's tracker Bound at BeginFrame time (the
	// append high-water mark, not the occupied count). Rollback removes
	// every entry at or past it, plus any allocation this frame made into a
	// pre-frame hole below it (recognized by an offset at or past
	// startBump), so pre-frame entries survive.
	slotsStart int

	valid bool
	next  *Frame // the enclosing (outer) frame, if any
}

// Tag returns the 4-byte handle tag identifying this as a frame record.
func (f *Frame) Tag() [4]byte {
	return f.tag
}

// Valid reports whether this frame has not yet been ended (by itself, or
// implicitly by ending an outer frame).
func (f *Frame) Valid() bool {
	return f.valid
}

// End is a convenience for f.arena.EndFrame(f).
func (f *Frame) End() {
	f.arena.EndFrame(f)
}

// Arena returns the arena this frame belongs to.
func (f *Frame) Arena() *Arena {
	return f.arena
}
