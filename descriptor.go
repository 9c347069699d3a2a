package segarena

// blockDescriptor is the bookkeeping record for one block: its start
// offset within the arena, and whether it is currently free. Its
// address never changes across its lifetime; only free toggles.
type blockDescriptor struct {
	address int
	free    bool
}

// freeList holds every live descriptor for one size class. Appends only
// ever happen at the tail (splitting), matching §4.2: the underlying
// slice is pre-sized to capacity so append never triggers a reallocation.
type freeList struct {
	classSize int
	capacity  int
	blocks    []blockDescriptor
}

// classCapacity implements §3's reservation formula,
// ⌈ARENA_SIZE / class_size⌉ + 1: enough slots to hold the arena fully
// partitioned into this one class, plus one so a worst-case split always
// has room for the extra descriptor it creates.
func classCapacity(arenaSize, classSize int) int {
	ceilDiv := (arenaSize + classSize - 1) / classSize
	return ceilDiv + 1
}

func newFreeList(classSize, arenaSize int) freeList {
	cap := classCapacity(arenaSize, classSize)
	return freeList{
		classSize: classSize,
		capacity:  cap,
		blocks:    make([]blockDescriptor, 0, cap),
	}
}

// lastFreeIndex scans from the tail toward the head and returns the
// index of the first free descriptor encountered. Slot order is not
// address order (splits append the upper half before the lower half, and
// popBlock swaps the tail into the vacated slot), so this is not
// necessarily the highest-address free block of this class.
func (l *freeList) lastFreeIndex() (int, bool) {
	for i := len(l.blocks) - 1; i >= 0; i-- {
		if l.blocks[i].free {
			return i, true
		}
	}
	return 0, false
}

// firstFreeIndex scans from the head toward the tail and returns the
// index of the first free descriptor encountered.
func (l *freeList) firstFreeIndex() (int, bool) {
	for i := range l.blocks {
		if l.blocks[i].free {
			return i, true
		}
	}
	return 0, false
}
