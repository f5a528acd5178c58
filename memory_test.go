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

package memarena_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/TheBadkraft/memarena"
	"github.com/TheBadkraft/memarena/arena"
	"github.com/TheBadkraft/memarena/config"
	"github.com/TheBadkraft/memarena/scope"
)

func TestReallocFromNilBehavesAsAlloc(t *testing.T) {
	memarena.Init(config.Default())
	defer memarena.Teardown()

	p := memarena.Realloc(nil, 32)
	require.NotNil(t, p)
}

func TestReallocToZeroBehavesAsFree(t *testing.T) {
	memarena.Init(config.Default())
	defer memarena.Teardown()

	p := memarena.Alloc(32)
	require.Nil(t, memarena.Realloc(p, 0))
}

func TestReallocPreservesDataAcrossGrowth(t *testing.T) {
	memarena.Init(config.Default())
	defer memarena.Teardown()

	p := memarena.Alloc(8)
	copy(unsafe.Slice((*byte)(p), 8), []byte("origdata"))

	grown := memarena.Realloc(p, 64)
	require.NotNil(t, grown)
	require.Equal(t, []byte("origdata"), unsafe.Slice((*byte)(grown), 8)[:8])
}

func TestAllocHooksCanBeSubstitutedAndReset(t *testing.T) {
	memarena.Init(config.Default())
	defer memarena.Teardown()

	calls := 0
	memarena.SetAllocHooks(memarena.AllocHooks{
		Calloc: func(n int) []byte {
			calls++
			return make([]byte, n)
		},
	})
	defer memarena.ResetAllocHooks()

	memarena.Init(config.Config{InitialPages: 2, MinSparePages: 0})
	require.Positive(t, calls)
}

// End-to-end scenario 1: adjacent coalesce.
func TestScenarioAdjacentCoalesce(t *testing.T) {
	memarena.Init(config.Default())
	defer memarena.Teardown()

	a := memarena.Alloc(100)
	b := memarena.Alloc(100)
	c := memarena.Alloc(100)
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)

	memarena.Free(a)
	memarena.Free(c)
	memarena.Free(b)

	require.NotNil(t, memarena.Alloc(300))
}

// End-to-end scenario 5: scope move.
func TestScenarioScopeMove(t *testing.T) {
	a1 := arena.New()
	defer a1.Dispose()
	a2 := arena.New()
	defer a2.Dispose()

	p := a1.Alloc(64, false)
	require.NoError(t, memarena.Move(scope.Of(a1), scope.Of(a2), p))

	require.False(t, a1.IsTracking(p))
	require.True(t, a2.IsTracking(p))
}
