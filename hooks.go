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

import "github.com/TheBadkraft/memarena/internal/sysalloc"

// AllocHooks is the four-function-slot system allocator surface a caller
// can substitute for page acquisition: allocate, free, zeroed-allocate,
// and reallocate. It is a re-export of sysalloc.Hooks so that callers of
// this façade never need to import the internal package directly.
type AllocHooks = sysalloc.Hooks

// SetAllocHooks installs new system allocator hooks for backing-page
// acquisition. Any field left nil keeps its current value. Hooks affect
// only page acquisition, never the user-visible Alloc/Free/Realloc above.
func SetAllocHooks(h AllocHooks) {
	sysalloc.Set(h)
}

// ResetAllocHooks restores the default, Go-native system allocator hooks.
func ResetAllocHooks() {
	sysalloc.Reset()
}
