package segarena

// VizEntry describes one allocated block for layout reporting: its
// offset within the arena and its class size in bytes. It mirrors
// struct ArenaVizBlk from the collaborating visualization transport.
type VizEntry struct {
	Offset int
	Length int
}

// Vizable is implemented by anything that can report its own memory
// layout to an external diagnostic collaborator. The transport that
// consumes it (package vizsock) lives outside this package on purpose:
// segarena itself never imports net, so it stays viable for bare-metal
// targets that never wire a diagnostic socket in at all.
type Vizable interface {
	// ArenaLayout fills buf with one entry per currently allocated
	// block and returns the number of allocated blocks. If buf is
	// smaller than that count, the entries that do fit are filled and a
	// non-nil error is returned so the caller can retry with a bigger
	// buffer.
	ArenaLayout(buf []VizEntry) (n int, err error)

	// ArenaSize reports the total byte length of the managed arena.
	ArenaSize() int
}

// Defragable is implemented by allocators that can report fragmentation
// and (if a compaction scheme is wired in) perform it. Defragment may
// move allocated blocks; callers must have registered update callbacks
// for any references they hold before invoking it.
type Defragable interface {
	IsFragmented() bool
	Defragment() error
}

var (
	_ Vizable    = (*Arena)(nil)
	_ Defragable = (*Arena)(nil)
)

// ArenaLayout implements Vizable.
func (a *Arena) ArenaLayout(buf []VizEntry) (int, error) {
	if !a.initialized {
		return 0, ErrNotInitialized
	}
	n := 0
	for _, list := range a.lists {
		for _, b := range list.blocks {
			if b.free {
				continue
			}
			if n < len(buf) {
				buf[n] = VizEntry{Offset: b.address, Length: list.classSize}
			}
			n++
		}
	}
	if n > len(buf) {
		return n, errLayoutBufferTooSmall(n, len(buf))
	}
	return n, nil
}

// IsFragmented implements Defragable with a cheap heuristic: true if any
// class smaller than the largest holds both a free and an allocated
// descriptor, meaning a coalesce could in principle reduce the number of
// distinct blocks the arena is split into.
func (a *Arena) IsFragmented() bool {
	for _, list := range a.lists {
		if list.classSize == a.classSizes[0] {
			continue
		}
		hasFree, hasAllocated := false, false
		for _, b := range list.blocks {
			if b.free {
				hasFree = true
			} else {
				hasAllocated = true
			}
			if hasFree && hasAllocated {
				break
			}
		}
		if hasFree && hasAllocated {
			return true
		}
	}
	return false
}

// Defragment implements Defragable. The moving compaction algorithm is
// explicitly out of scope for this core (see spec §1); the contract
// exists so collaborators can be written against it, but invoking it
// always fails with ErrCompactionNotImplemented rather than silently
// doing nothing.
func (a *Arena) Defragment() error {
	return ErrCompactionNotImplemented
}
