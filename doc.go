// Package segarena implements a segregated-fit block allocator over a
// single, fixed, contiguous byte arena.
//
// The arena is partitioned at Init time into a descending sequence of
// power-of-two size classes (1024, 512, 256, ... by default). Each class
// owns a free list of block descriptors, statically capped so that no
// allocation pattern can exceed its worst-case size. Alloc finds the
// smallest class that fits a request; if that class is exhausted, it
// splits a block borrowed from the nearest larger class with a free
// block, cascading upward through classes as needed.
//
// segarena is single-threaded: every exported method assumes exclusive
// access for its duration. A caller sharing an *Arena across goroutines
// (or an interrupt context) must provide its own mutual exclusion around
// every call, including IsAllocated.
package segarena
