// Package addrindex provides an O(1) alternative to segarena's default
// linear address-to-descriptor scan, for callers whose arena density
// makes the scan cost noticeable (the redesign note in the spec this
// allocator implements explicitly invites this as an opt-in).
//
// container/strmap in the retrieved reference corpus solves a related
// problem (string key -> value) with a custom open-addressed table, but
// it is built once via New/NewFromMap and read thereafter; our keys
// (block addresses) are inserted and removed on every split, so the
// read-only table doesn't fit. A plain map is the idiomatic choice
// for a key set that mutates every call.
package addrindex

// Ref locates a descriptor: which size class it lives in, and its slot
// within that class's slice.
type Ref struct {
	Class int
	Slot  int
}

// Index maps arena byte offsets to their owning descriptor's location.
type Index struct {
	byAddr map[int]Ref
}

// New returns an empty Index.
func New() *Index {
	return &Index{byAddr: make(map[int]Ref)}
}

// Set records (or updates) the location of the descriptor at addr.
func (ix *Index) Set(addr, class, slot int) {
	ix.byAddr[addr] = Ref{Class: class, Slot: slot}
}

// Delete removes addr from the index, e.g. after it is popped for a
// split or otherwise stops being a live block start.
func (ix *Index) Delete(addr int) {
	delete(ix.byAddr, addr)
}

// Lookup returns the class and slot owning addr, if any.
func (ix *Index) Lookup(addr int) (class, slot int, ok bool) {
	ref, ok := ix.byAddr[addr]
	return ref.Class, ref.Slot, ok
}

// Len reports how many addresses are currently indexed.
func (ix *Index) Len() int {
	return len(ix.byAddr)
}
