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

//go:build !debug

// Package dbg includes debugging helpers shared by the allocator packages.
//
// This file is the no-op build; build with -tags debug to get verbose
// tracing of every page/pool/arena mutation.
package dbg

// Enabled is true when the module is built with the debug tag.
const Enabled = false

// Log is a no-op in non-debug builds.
func Log(context []any, operation string, format string, args ...any) {}

// Warn is a no-op in non-debug builds.
func Warn(format string, args ...any) {}

// Assert is a no-op in non-debug builds.
func Assert(cond bool, format string, args ...any) {}

// SetFilter is a no-op in non-debug builds.
func SetFilter(pattern string) error { return nil }
