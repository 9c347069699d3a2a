package segarena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkNoOverlap asserts invariant 1: no two live descriptors, across any
// class, describe overlapping address ranges.
func checkNoOverlap(t *testing.T, a *Arena) {
	t.Helper()
	type span struct{ lo, hi int }
	var spans []span
	for c, list := range a.lists {
		for _, b := range list.blocks {
			spans = append(spans, span{b.address, b.address + a.classSizes[c]})
		}
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			overlap := spans[i].lo < spans[j].hi && spans[j].lo < spans[i].hi
			assert.False(t, overlap, "spans %v and %v overlap", spans[i], spans[j])
		}
	}
}

// checkSpaceAccounting asserts invariant 2: space_available plus the
// bytes held by allocated blocks always equals the usable arena size.
func checkSpaceAccounting(t *testing.T, a *Arena) {
	t.Helper()
	allocated := 0
	for c, list := range a.lists {
		for _, b := range list.blocks {
			if !b.free {
				allocated += a.classSizes[c]
			}
		}
	}
	assert.Equal(t, a.Usable(), a.Available()+allocated)
}

func TestInvariantNoOverlapAcrossMixedSizeOps(t *testing.T) {
	a := newTestArena(t, 4096)
	sizes := []int{1, 17, 33, 65, 129, 257, 513, 900, 20, 40, 60}

	var live []int
	for round := 0; round < 4; round++ {
		for _, sz := range sizes {
			addr, err := a.Alloc(sz)
			if err == nil {
				live = append(live, addr)
			}
		}
		checkNoOverlap(t, a)
		checkSpaceAccounting(t, a)

		for _, addr := range live {
			require.NoError(t, a.Free(addr))
		}
		live = nil
		checkSpaceAccounting(t, a)
	}
}

func TestInvariantSpaceAccountingThroughoutLifecycle(t *testing.T) {
	a := newTestArena(t, 2048)
	checkSpaceAccounting(t, a)

	addr, err := a.Alloc(900)
	require.NoError(t, err)
	checkSpaceAccounting(t, a)

	_, err = a.Realloc(addr, 10)
	require.NoError(t, err)
	checkSpaceAccounting(t, a)
}

func TestInvariantIsAllocatedTrueUntilFree(t *testing.T) {
	a := newTestArena(t, 2048)
	addr, err := a.Alloc(300)
	require.NoError(t, err)

	require.True(t, a.IsAllocated(addr))
	require.NoError(t, a.Free(addr))
	assert.False(t, a.IsAllocated(addr))
}

func TestInvariantSelectedClassBestFit(t *testing.T) {
	a := newTestArena(t, 4096)
	for _, sz := range []int{1, 16, 17, 32, 33, 64, 65, 100, 128, 256, 511, 512} {
		addr, err := a.Alloc(sz)
		require.NoError(t, err, "size %d", sz)
		class, _, found := a.lookup(addr)
		require.True(t, found)
		classSize := a.classSizes[class]
		if classSize == a.classSizes[len(a.classSizes)-1] {
			assert.LessOrEqual(t, sz, classSize)
		} else {
			assert.Greater(t, sz, classSize/2)
			assert.LessOrEqual(t, sz, classSize)
		}
	}
}

func TestInvariantReallocSameClassIsIdentity(t *testing.T) {
	a := newTestArena(t, 2048)
	addr, err := a.Alloc(300)
	require.NoError(t, err)

	class, _, found := a.lookup(addr)
	require.True(t, found)
	classSize := a.classSizes[class]

	got, err := a.Realloc(addr, classSize)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestInvariantFreeIdempotentOnUnknownAddress(t *testing.T) {
	a := newTestArena(t, 2048)
	before := a.Available()
	for i := 0; i < 5; i++ {
		require.NoError(t, a.Free(0xDEADBEEF))
	}
	assert.Equal(t, before, a.Available())
}

func TestBoundaryRequestingLargestClassSucceeds(t *testing.T) {
	a := newTestArena(t, 2048)
	addr, err := a.Alloc(1024)
	require.NoError(t, err)
	assert.True(t, a.IsAllocated(addr))

	a2 := newTestArena(t, 2048)
	_, err = a2.Alloc(1025)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestBoundaryExhaustionReturnsOutOfSpaceOrFragmented(t *testing.T) {
	a := newTestArena(t, 2048)
	for i := 0; i < 64; i++ {
		_, err := a.Alloc(32)
		require.NoError(t, err)
	}
	_, err := a.Alloc(32)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfSpace) || errors.Is(err, ErrFragmented))
}

func TestBoundaryFreeingEveryBlockRestoresPostInitAvailable(t *testing.T) {
	a := newTestArena(t, 2048)
	postInit := a.Available()

	var addrs []int
	for i := 0; i < 10; i++ {
		addr, err := a.Alloc(80)
		require.NoError(t, err)
		addrs = append(addrs, addr)
	}
	for _, addr := range addrs {
		require.NoError(t, a.Free(addr))
	}
	assert.Equal(t, postInit, a.Available())
}
