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

package scope_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/TheBadkraft/memarena/arena"
	"github.com/TheBadkraft/memarena/internal/allocerr"
	"github.com/TheBadkraft/memarena/scope"
)

func TestMoveTransfersTrackingNotBytes(t *testing.T) {
	t.Parallel()

	a1 := arena.New()
	defer a1.Dispose()
	a2 := arena.New()
	defer a2.Dispose()

	p := a1.Alloc(64, false)
	*(*byte)(p) = 0x42

	require.NoError(t, scope.Move(scope.Of(a1), scope.Of(a2), p))

	require.False(t, a1.IsTracking(p))
	require.True(t, a2.IsTracking(p))
	require.Equal(t, byte(0x42), *(*byte)(p))
}

func TestMoveRoundtripRestoresOriginalOwner(t *testing.T) {
	t.Parallel()

	a1 := arena.New()
	defer a1.Dispose()
	a2 := arena.New()
	defer a2.Dispose()

	p := a1.Alloc(32, false)
	require.NoError(t, scope.Move(scope.Of(a1), scope.Of(a2), p))
	require.NoError(t, scope.Move(scope.Of(a2), scope.Of(a1), p))

	require.True(t, a1.IsTracking(p))
	require.False(t, a2.IsTracking(p))
}

func TestMoveRejectsUntrackedObject(t *testing.T) {
	t.Parallel()

	a1 := arena.New()
	defer a1.Dispose()
	a2 := arena.New()
	defer a2.Dispose()

	p := a1.Alloc(16, false)
	a1.Untrack(p)

	err := scope.Move(scope.Of(a1), scope.Of(a2), p)
	require.Error(t, err)
	require.ErrorIs(t, err, allocerr.ErrNotOwned)
}

func TestMoveRejectsNilScope(t *testing.T) {
	t.Parallel()

	a1 := arena.New()
	defer a1.Dispose()

	p := a1.Alloc(16, false)
	err := scope.Move(scope.Of(a1), nil, p)
	require.Error(t, err)
}

func TestImportCopiesDataIntoScope(t *testing.T) {
	t.Parallel()

	a := arena.New()
	defer a.Dispose()

	data := []byte("hello, scope")
	ptr, err := scope.Import(scope.Of(a), data)
	require.NoError(t, err)
	require.True(t, a.IsTracking(ptr))

	got := unsafe.Slice((*byte)(ptr), len(data))
	require.Equal(t, data, got)
}

func TestExportCopiesOutToIndependentBuffer(t *testing.T) {
	t.Parallel()

	a := arena.New()
	defer a.Dispose()

	ptr, err := scope.Import(scope.Of(a), []byte("payload"))
	require.NoError(t, err)

	data := unsafe.Slice((*byte)(ptr), len("payload"))
	out, err := scope.Export(scope.Of(a), data)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), out)

	a.Dispose()
	require.Equal(t, []byte("payload"), out, "exported buffer must survive arena disposal")
}

func TestExportValueIsIndependentOfSourceArena(t *testing.T) {
	t.Parallel()

	type payload struct {
		N int
		S string
	}
	v := &payload{N: 7, S: "owned"}

	out, err := scope.ExportValue(v)
	require.NoError(t, err)
	require.Equal(t, v.N, out.N)
	require.Equal(t, v.S, out.S)
	require.NotSame(t, v, out)
}
