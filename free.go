package segarena

// lookup finds the descriptor whose address equals addr exactly —
// addresses interior to a block are never accepted, per spec §9 Q3.
// In debug mode, the scan continues past a hit to assert invariant 3
// (unique identity) instead of returning early.
func (a *Arena) lookup(addr int) (class, idx int, found bool) {
	if a.index != nil {
		class, idx, found = a.index.Lookup(addr)
		return
	}
	for c := range a.lists {
		blocks := a.lists[c].blocks
		for i := range blocks {
			if blocks[i].address != addr {
				continue
			}
			if !a.cfg.Debug {
				return c, i, true
			}
			if found {
				panic("segarena: duplicate descriptor address, invariant 3 violated")
			}
			class, idx, found = c, i, true
		}
	}
	return
}

// Free marks the block starting at addr as free. An address that is not
// the exact start of a live descriptor is silently ignored unless
// Config.StrictFree is set, in which case it returns ErrNotABlock.
// Freeing an already-free block is likewise silent unless StrictFree,
// in which case it returns ErrAlreadyFree.
func (a *Arena) Free(addr int) error {
	if !a.initialized {
		return ErrNotInitialized
	}
	class, idx, found := a.lookup(addr)
	if !found {
		if a.cfg.StrictFree {
			return ErrNotABlock
		}
		return nil
	}
	blk := &a.lists[class].blocks[idx]
	if blk.free {
		if a.cfg.StrictFree {
			return ErrAlreadyFree
		}
		return nil
	}
	blk.free = true
	a.available += a.classSizes[class]
	return nil
}

// IsAllocated reports whether addr is the exact start address of a live
// descriptor that is currently allocated. An uninitialized Arena has no
// blocks at all, so it reports false rather than returning
// ErrNotInitialized: IsAllocated has no error return in its signature,
// matching the C original's boolean query.
func (a *Arena) IsAllocated(addr int) bool {
	if !a.initialized {
		return false
	}
	class, idx, found := a.lookup(addr)
	return found && !a.lists[class].blocks[idx].free
}

// Realloc resizes the block at addr to reqBytes.
//
//   - If addr does not name a live block, or names a free one,
//     it returns ErrNotABlock / ErrAlreadyFree respectively.
//   - If reqBytes already best-fits the current class
//     (class/2 < reqBytes <= class), addr is returned unchanged.
//   - If reqBytes == 0, the block is freed and NullAddr is returned.
//   - Otherwise a new block is allocated, min(oldSize, reqBytes) bytes
//     are copied, and the old block is freed. If no new block can be
//     allocated, the old block is left intact and addr is returned
//     alongside ErrReallocNoSpace — callers can keep using it.
func (a *Arena) Realloc(addr int, reqBytes int) (int, error) {
	if !a.initialized {
		return NullAddr, ErrNotInitialized
	}
	class, idx, found := a.lookup(addr)
	if !found {
		return NullAddr, ErrNotABlock
	}
	if a.lists[class].blocks[idx].free {
		return NullAddr, ErrAlreadyFree
	}

	classSize := a.classSizes[class]

	if reqBytes == 0 {
		_ = a.Free(addr)
		return NullAddr, nil
	}
	if reqBytes > classSize/2 && reqBytes <= classSize {
		return addr, nil
	}

	newAddr, err := a.Alloc(reqBytes)
	if err != nil {
		return addr, ErrReallocNoSpace
	}

	n := classSize
	if reqBytes < n {
		n = reqBytes
	}
	copy(a.buf[newAddr:newAddr+n], a.buf[addr:addr+n])
	_ = a.Free(addr)
	return newAddr, nil
}
