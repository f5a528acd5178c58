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

// Package allocerr holds the sentinel errors shared by pool, arena, and
// scope, mirroring the errCode/Unwrap pattern the teacher uses for parse
// errors (see hyperpb's error.go), adapted to the allocator's own error
// taxonomy.
package allocerr

import "errors"

var (
	// ErrOverflow is returned when a requested size, once aligned and
	// padded with a block header, would wrap around an int.
	ErrOverflow = errors.New("memarena: size overflows on alignment")

	// ErrTooLarge is returned when a single allocation could never fit in
	// one page, regardless of how many pages a Pool grows by, or when an
	// Arena allocation request exceeds the page size.
	ErrTooLarge = errors.New("memarena: requested size exceeds one page")

	// ErrOutOfMemory is returned when the system allocator hooks fail to
	// produce a backing buffer.
	ErrOutOfMemory = errors.New("memarena: system allocator failed")

	// ErrOutOfRange names the error of an index that is not currently
	// valid. SlotArray's accessors report that case with a false result
	// rather than returning this error.
	ErrOutOfRange = errors.New("memarena: index out of range")

	// ErrEmptySlot names the error of reading a slot that holds the
	// sentinel. SlotArray.GetAt reports that case with a false result
	// rather than returning this error.
	ErrEmptySlot = errors.New("memarena: slot is empty")

	// ErrInvalidScope is returned by the scope-move protocol when a scope
	// argument is nil or fails its handle-tag check.
	ErrInvalidScope = errors.New("memarena: invalid scope")

	// ErrNotOwned is returned by scope.Move when the source scope is not
	// currently tracking the object being moved.
	ErrNotOwned = errors.New("memarena: object is not owned by the source scope")
)

// ScopeError wraps a scope-protocol failure together with the name of the
// operation that failed ("move", "import" or "export"); Unwrap yields the
// sentinel error.
type ScopeError struct {
	Op  string
	Err error
}

func (e *ScopeError) Error() string {
	return "memarena: " + e.Op + ": " + e.Err.Error()
}

func (e *ScopeError) Unwrap() error {
	return e.Err
}
