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

// Package sysalloc holds the pluggable system-allocator hooks used to
// acquire and release page-sized backing buffers. It replaces the
// interface-of-function-pointers façade style of the original with a plain
// struct of func fields, set through Set/Reset.
//
// Hooks affect only backing-page acquisition; they are never on the hot
// path of Pool.Alloc/Arena.Alloc once a page has been carved up.
package sysalloc

// Hooks is the four-function-slot system allocator surface: allocate,
// free, zeroed-allocate, and reallocate.
type Hooks struct {
	// Alloc returns a new buffer of exactly n bytes. Contents are
	// unspecified.
	Alloc func(n int) []byte
	// Free releases a buffer previously returned by Alloc, Calloc, or
	// Realloc. May be a no-op for a garbage-collected backing allocator.
	Free func(buf []byte)
	// Calloc returns a new, zero-filled buffer of exactly n bytes.
	Calloc func(n int) []byte
	// Realloc returns a buffer of exactly newSize bytes, with
	// min(len(buf), newSize) bytes copied from buf.
	Realloc func(buf []byte, newSize int) []byte
}

func defaultHooks() Hooks {
	return Hooks{
		Alloc:  func(n int) []byte { return make([]byte, n) },
		Free:   func(buf []byte) {},
		Calloc: func(n int) []byte { return make([]byte, n) },
		Realloc: func(buf []byte, newSize int) []byte {
			grown := make([]byte, newSize)
			copy(grown, buf)
			return grown
		},
	}
}

var current = defaultHooks()

// Current returns the presently installed hooks.
func Current() Hooks {
	return current
}

// Set installs new hooks. Any field left nil keeps its current value,
// matching the "setting a slot to null keeps the current value" contract.
func Set(h Hooks) {
	if h.Alloc != nil {
		current.Alloc = h.Alloc
	}
	if h.Free != nil {
		current.Free = h.Free
	}
	if h.Calloc != nil {
		current.Calloc = h.Calloc
	}
	if h.Realloc != nil {
		current.Realloc = h.Realloc
	}
}

// Reset restores the default, Go-native hooks.
func Reset() {
	current = defaultHooks()
}
