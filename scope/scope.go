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

// Package scope generalizes "arena or frame" into a single Scope
// interface, and implements the ownership-transfer protocol (Move) and the
// import/export helpers that cross the boundary between a scope and the
// system heap.
//
// Scope kind dispatch is an ordinary Go interface, a sum type over
// *arena.Arena and *arena.Frame; the 4-byte handle tag each of them also
// carries is kept only as a defensive wire-format invariant (see
// memaddr.Tag), never as the actual dispatch mechanism.
package scope

import (
	"unsafe"

	"github.com/tiendc/go-deepcopy"

	"github.com/TheBadkraft/memarena/arena"
	"github.com/TheBadkraft/memarena/internal/allocerr"
	"github.com/TheBadkraft/memarena/internal/dbg"
	"github.com/TheBadkraft/memarena/internal/memaddr"
)

// Scope is anything ownership can be moved into or out of: an arena, or a
// frame within one. Pool-allocated memory deliberately does not implement
// Scope; transferring a pool allocation into an arena is out of scope (see
// DESIGN.md, "Pool-to-arena transfer").
type Scope interface {
	// Tag returns the 4-byte handle tag identifying the concrete kind.
	Tag() [4]byte
	// owningArena returns the arena that actually tracks allocations for
	// this scope: itself for an Arena, or its parent for a Frame.
	owningArena() *arena.Arena
}

// arenaScope adapts *arena.Arena to Scope.
type arenaScope struct{ a *arena.Arena }

func (s arenaScope) Tag() [4]byte          { return s.a.Tag() }
func (s arenaScope) owningArena() *arena.Arena { return s.a }

// frameScope adapts *arena.Frame to Scope.
type frameScope struct{ f *arena.Frame }

func (s frameScope) Tag() [4]byte          { return s.f.Tag() }
func (s frameScope) owningArena() *arena.Arena { return s.f.Arena() }

// Of wraps an *arena.Arena as a Scope.
func Of(a *arena.Arena) Scope {
	return arenaScope{a}
}

// OfFrame wraps an *arena.Frame as a Scope.
func OfFrame(f *arena.Frame) Scope {
	return frameScope{f}
}

func validTag(t [4]byte) bool {
	return t == memaddr.TagArena || t == memaddr.TagFrame
}

// Move transfers ownership of obj, previously allocated from (or
// previously moved into) from, to the destination scope to. The bytes at
// obj are never touched; only the tracking record moves. Returns
// allocerr.ErrInvalidScope if either scope is nil or fails its tag check,
// and allocerr.ErrNotOwned if from is not currently tracking obj.
func Move(from, to Scope, obj unsafe.Pointer) error {
	if from == nil || to == nil || !validTag(from.Tag()) || !validTag(to.Tag()) {
		return &allocerr.ScopeError{Op: "move", Err: allocerr.ErrInvalidScope}
	}

	fromArena := from.owningArena()
	toArena := to.owningArena()

	if !fromArena.Untrack(obj) {
		return &allocerr.ScopeError{Op: "move", Err: allocerr.ErrNotOwned}
	}

	toArena.Track(obj)
	dbg.Log(nil, "scope.move", "%p", obj)
	return nil
}

// Import allocates len(data) bytes in s and copies data into it.
func Import(s Scope, data []byte) (unsafe.Pointer, error) {
	if s == nil || !validTag(s.Tag()) {
		return nil, &allocerr.ScopeError{Op: "import", Err: allocerr.ErrInvalidScope}
	}

	ptr := s.owningArena().Alloc(len(data), false)
	if ptr == nil && len(data) > 0 {
		return nil, &allocerr.ScopeError{Op: "import", Err: allocerr.ErrTooLarge}
	}
	if len(data) > 0 {
		copy(unsafe.Slice((*byte)(ptr), len(data)), data)
	}
	return ptr, nil
}

// Export copies data out to a freshly heap-allocated buffer that the
// caller owns independently of s. s is only tag-checked, never allocated
// from: the system heap (ordinary Go memory), not the scope, backs the
// returned slice, matching spec.md §4.5's export contract.
func Export(s Scope, data []byte) ([]byte, error) {
	if s == nil || !validTag(s.Tag()) {
		return nil, &allocerr.ScopeError{Op: "export", Err: allocerr.ErrInvalidScope}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ExportValue deep-copies v into a new, scope-independent value using
// github.com/tiendc/go-deepcopy, for callers that hold a typed pointer
// into scope memory (e.g. one returned by a generic wrapper over Import)
// and want an owned copy that survives the scope's disposal.
func ExportValue[T any](v *T) (*T, error) {
	var out *T
	if err := deepcopy.Copy(&out, &v); err != nil {
		return nil, err
	}
	return out, nil
}
