package segarena

import (
	"errors"
	"fmt"
)

// NullAddr is returned in place of a valid offset whenever Alloc fails,
// whenever Realloc fails with an error other than ErrReallocNoSpace (which
// comes with the original address), or when Realloc is asked to shrink a
// block to zero bytes.
const NullAddr = -1

var (
	// ErrNotInitialized is returned by Alloc, Realloc, Free and
	// ArenaLayout when invoked on an Arena that did not come from a
	// successful Init (such as a zero-value Arena). IsAllocated reports
	// false instead.
	ErrNotInitialized = errors.New("segarena: arena not initialized")

	// ErrTooLarge is returned when a request exceeds the largest
	// configured size class.
	ErrTooLarge = errors.New("segarena: request exceeds largest size class")

	// ErrOutOfSpace is returned when a request exceeds the arena's
	// remaining space_available, even though it would fit a class.
	ErrOutOfSpace = errors.New("segarena: insufficient space available")

	// ErrFragmented is returned when no block can be found or
	// synthesized via splitting, despite space being nominally
	// available (e.g. spread across classes that cannot be merged).
	ErrFragmented = errors.New("segarena: no block satisfiable even after splitting")

	// ErrNotABlock is returned for an address that is not the exact
	// start of a live descriptor: always by Realloc, and by Free only
	// when Config.StrictFree is set.
	ErrNotABlock = errors.New("segarena: address is not a live block start")

	// ErrAlreadyFree is returned when Realloc is called on a block that
	// is already free, and (only when Config.StrictFree is set) when
	// Free is called twice on the same block.
	ErrAlreadyFree = errors.New("segarena: double free")

	// ErrReallocNoSpace is returned when Realloc cannot find a new block;
	// the old block is left intact and valid. The underlying Alloc error
	// is not wrapped into it.
	ErrReallocNoSpace = errors.New("segarena: realloc could not find a new block")

	// ErrCompactionNotImplemented is returned by Defragment. The
	// Defragable contract is specified so collaborators can be written
	// against it, but the moving compaction algorithm itself is a
	// separate effort (see spec §1).
	ErrCompactionNotImplemented = errors.New("segarena: compaction algorithm not implemented")

	errLayoutTooSmall = errors.New("segarena: layout buffer too small")
)

func errLayoutBufferTooSmall(need, got int) error {
	return fmt.Errorf("%w: need %d entries, got %d", errLayoutTooSmall, need, got)
}
