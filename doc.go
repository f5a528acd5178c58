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

// Package memarena provides a hierarchical memory management subsystem:
// a free-list pool (package pool), bump-allocating arenas with nested
// frames (package arena), and an ownership-transfer protocol between them
// (package scope) — all built atop an index-stable slot array (package
// internal/slotarray).
//
// This package itself is the global heap façade: a process-wide default
// Pool reachable through the unqualified Alloc/Free/Realloc functions,
// plus hooks to substitute the underlying system allocator. Most programs
// only need this package; reach into arena and scope directly for
// bump-allocation and ownership transfer.
package memarena
