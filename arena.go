package segarena

import (
	"fmt"

	"github.com/bytedance/gopkg/lang/dirtmake"

	"github.com/segfit/segarena/addrindex"
)

// Arena owns a single, fixed, contiguous byte region and the segregated
// free lists that partition it. Callers construct one with Init and
// never destroy it; descriptor storage is reserved for the Arena's
// entire lifetime.
//
// Arena is not safe for concurrent use. A host running it from multiple
// goroutines, or from an interrupt handler, must serialize every call
// itself, including IsAllocated.
type Arena struct {
	cfg         Config
	buf         []byte
	classSizes  []int
	lists       []freeList
	usable      int
	available   int
	index       *addrindex.Index
	initialized bool
}

// Init partitions a new arena according to cfg and returns it ready for
// Alloc/Realloc/Free/IsAllocated. Init must succeed before any other
// Arena method is called; there is no implicit global arena.
func Init(cfg Config) (*Arena, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	a := &Arena{
		cfg:        cfg,
		classSizes: cfg.ClassSizes,
		lists:      make([]freeList, len(cfg.ClassSizes)),
	}

	// dirtmake skips the zero-fill make([]byte, n) would otherwise pay
	// for: every byte is about to be claimed by a descriptor or handed
	// to a caller, so the zeroing is wasted work (same reasoning as
	// bufiox.BytesReader.Grow and protocol/thrift's fastcodec buffers).
	a.buf = dirtmake.Bytes(cfg.ArenaSize, cfg.ArenaSize)

	for i, sz := range cfg.ClassSizes {
		a.lists[i] = newFreeList(sz, cfg.ArenaSize)
	}

	lens := cfg.InitialLengths
	if lens == nil {
		lens = a.greedyInitialLengths()
	} else if err := a.validateInitialLengths(lens); err != nil {
		return nil, err
	}

	offset := 0
	for i, sz := range a.classSizes {
		for j := 0; j < lens[i]; j++ {
			a.lists[i].blocks = append(a.lists[i].blocks, blockDescriptor{address: offset, free: true})
			offset += sz
		}
	}
	a.usable = offset
	a.available = offset

	if cfg.AddressIndex {
		a.index = addrindex.New()
		for c := range a.lists {
			for s, b := range a.lists[c].blocks {
				a.index.Set(b.address, c, s)
			}
		}
	}

	a.initialized = true
	return a, nil
}

// greedyInitialLengths emplaces floor(remaining/classSize) descriptors
// per class, largest class first, capped by capacity; the residue
// cascades to the next smaller class. This is the default partition
// from spec §4.3's Init contract.
func (a *Arena) greedyInitialLengths() []int {
	lens := make([]int, len(a.classSizes))
	remaining := a.cfg.ArenaSize
	for i, sz := range a.classSizes {
		n := remaining / sz
		if cap := a.lists[i].capacity; n > cap {
			n = cap
		}
		lens[i] = n
		remaining -= n * sz
	}
	return lens
}

func (a *Arena) validateInitialLengths(lens []int) error {
	total := 0
	for i, n := range lens {
		if n < 0 {
			return fmt.Errorf("segarena: InitialLengths[%d]=%d must be >= 0", i, n)
		}
		if n > a.lists[i].capacity {
			return fmt.Errorf("segarena: InitialLengths[%d]=%d exceeds class capacity %d",
				i, n, a.lists[i].capacity)
		}
		total += n * a.classSizes[i]
	}
	if total > a.cfg.ArenaSize {
		return fmt.Errorf("segarena: InitialLengths describe %d bytes, more than ArenaSize %d",
			total, a.cfg.ArenaSize)
	}
	return nil
}

// ArenaSize reports the total byte length of the managed arena.
// Part of the Vizable capability.
func (a *Arena) ArenaSize() int {
	return a.cfg.ArenaSize
}

// Available returns space_available: usable bytes not currently
// allocated. It decreases by a class's full size on Alloc (not by the
// requested size) and increases by a class's full size on Free.
func (a *Arena) Available() int {
	return a.available
}

// Usable returns the number of bytes at the front of the arena that are
// actually covered by a descriptor, per the partition Init computed or
// was given via Config.InitialLengths. Unless ClassSizes/InitialLengths
// perfectly tile ArenaSize, Usable can be less than ArenaSize: the
// remainder sits past the highest descriptor address and is never
// touched by Alloc, Free, or Realloc.
func (a *Arena) Usable() int {
	return a.usable
}
