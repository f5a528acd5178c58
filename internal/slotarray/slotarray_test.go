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

package slotarray_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheBadkraft/memarena/internal/slotarray"
)

func TestAddReusesLowestEmptySlot(t *testing.T) {
	t.Parallel()

	s := slotarray.New[int](10)
	for v := 1; v <= 10; v++ {
		idx := s.Add(v)
		require.Equal(t, v-1, idx)
	}
	require.Equal(t, 10, s.Capacity())

	require.True(t, s.RemoveAt(3))
	require.True(t, s.RemoveAt(5))

	require.Equal(t, 3, s.Add(100))
	require.Equal(t, 5, s.Add(200))
	require.Equal(t, 10, s.Capacity(), "hole reuse must not grow capacity")
}

func TestGetAtRoundtrip(t *testing.T) {
	t.Parallel()

	s := slotarray.New[string](2)
	idx := s.Add("hello")

	var out string
	require.True(t, s.GetAt(idx, &out))
	require.Equal(t, "hello", out)

	require.True(t, s.RemoveAt(idx))
	require.False(t, s.GetAt(idx, &out), "get after remove must fail")
	require.Equal(t, "hello", out, "out must be untouched on failure")
}

func TestGetAtOutOfRange(t *testing.T) {
	t.Parallel()

	s := slotarray.New[int](1)
	var out int
	require.False(t, s.GetAt(-1, &out))
	require.False(t, s.GetAt(5, &out))
	require.False(t, s.RemoveAt(5))
}

func TestGrowthDoublesCapacityAndPreservesIndices(t *testing.T) {
	t.Parallel()

	s := slotarray.New[int](2)
	a := s.Add(1)
	b := s.Add(2)
	c := s.Add(3) // forces growth

	require.Equal(t, 0, a)
	require.Equal(t, 1, b)
	require.Equal(t, 2, c)
	require.Equal(t, 4, s.Capacity())

	var out int
	require.True(t, s.GetAt(a, &out))
	require.Equal(t, 1, out)
	require.True(t, s.GetAt(b, &out))
	require.Equal(t, 2, out)
}

func TestNewFixedFailsAtCapacity(t *testing.T) {
	t.Parallel()

	s := slotarray.NewFixed[int](1)
	require.Equal(t, 0, s.Add(1))
	require.Equal(t, -1, s.Add(2), "non-growable array must refuse to grow")
}

func TestClearIsIdempotentAndPreservesCapacity(t *testing.T) {
	t.Parallel()

	s := slotarray.New[int](4)
	s.Add(1)
	s.Add(2)

	s.Clear()
	require.Equal(t, 4, s.Capacity())
	require.Equal(t, 0, s.Len())

	s.Clear() // idempotent
	require.Equal(t, 0, s.Len())

	require.Equal(t, 0, s.Add(42), "slots must be reusable after Clear")
}

func TestRemoveFromClearsTailOnly(t *testing.T) {
	t.Parallel()

	s := slotarray.New[int](5)
	s.Add(1) // idx 0
	s.Add(2) // idx 1
	mark := s.Len()
	s.Add(3) // idx 2
	s.Add(4) // idx 3

	removed := s.RemoveFrom(mark)
	require.Equal(t, 2, removed)
	require.Equal(t, mark, s.Len())

	var out int
	require.True(t, s.GetAt(0, &out))
	require.True(t, s.GetAt(1, &out))
	require.False(t, s.GetAt(2, &out))
	require.False(t, s.GetAt(3, &out))
}

func TestEachVisitsOccupiedSlotsAscending(t *testing.T) {
	t.Parallel()

	s := slotarray.New[int](5)
	s.Add(10)
	s.Add(20)
	idx := s.Add(30)
	s.RemoveAt(idx)
	s.Add(40)

	var seen []int
	s.Each(func(index int, value int) {
		seen = append(seen, value)
	})
	require.Equal(t, []int{10, 20, 40}, seen)
}
