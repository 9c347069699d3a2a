package segarena

import "fmt"

// DefaultClassSizes is the default descending size class ladder: each
// class is exactly twice the next, as required by §3 of the spec this
// allocator implements.
var DefaultClassSizes = []int{1024, 512, 256, 128, 64, 32}

// Config is the Go-native stand-in for the source's build-time macros
// (ARENA_SIZE, USE_EXTERNAL_INIT_LENS, VIZABLE): everything that would
// have been a compile-time toggle is a constructor argument instead.
type Config struct {
	// ArenaSize is the total number of bytes backing the arena. Required.
	ArenaSize int

	// ClassSizes is the descending list of block sizes. Each entry must
	// be a power of two and exactly twice the next entry. Defaults to
	// DefaultClassSizes when nil.
	ClassSizes []int

	// InitialLengths, if non-nil, overrides the greedy largest-class-first
	// partition with caller-supplied per-class counts. Must have the same
	// length as ClassSizes and respect each class's capacity.
	InitialLengths []int

	// Debug makes the linear address lookup continue scanning past a hit
	// to confirm uniqueness, panicking on a duplicate descriptor address,
	// mirroring the source's #ifndef NDEBUG path. A class capacity
	// overrun panics whether or not Debug is set.
	Debug bool

	// StrictFree upgrades Free's silent handling of unknown or
	// already-free addresses into ErrNotABlock/ErrAlreadyFree. Realloc
	// returns those errors regardless, and IsAllocated only reports false.
	StrictFree bool

	// AddressIndex enables an O(1) address-to-descriptor index (package
	// addrindex) instead of the default linear scan. Recommended once an
	// arena holds more than a few hundred live descriptors.
	AddressIndex bool

	// EnableVizSocket is a hint for hosting code; Init ignores it, and
	// nothing in this module (including cmd/segarenadiag) reads it:
	// segarena never imports net, so wiring an actual vizsock.Server is
	// the caller's job. It exists here so a single Config value can
	// describe both the arena and whether its host should expose it for
	// diagnostics.
	EnableVizSocket bool
}

// DefaultConfig returns a Config using DefaultClassSizes and the greedy
// largest-first initial partition, for an arena of the given size.
func DefaultConfig(arenaSize int) Config {
	return Config{ArenaSize: arenaSize}
}

func (cfg *Config) normalize() error {
	if cfg.ArenaSize <= 0 {
		return fmt.Errorf("segarena: ArenaSize must be > 0, got %d", cfg.ArenaSize)
	}
	if cfg.ClassSizes == nil {
		cfg.ClassSizes = append([]int(nil), DefaultClassSizes...)
	}
	if len(cfg.ClassSizes) == 0 {
		return fmt.Errorf("segarena: ClassSizes must not be empty")
	}
	for i, sz := range cfg.ClassSizes {
		if sz <= 0 || sz&(sz-1) != 0 {
			return fmt.Errorf("segarena: ClassSizes[%d]=%d is not a power of two", i, sz)
		}
		if i > 0 && cfg.ClassSizes[i-1] <= sz {
			return fmt.Errorf("segarena: ClassSizes must be strictly descending, got [%d]=%d after [%d]=%d",
				i, sz, i-1, cfg.ClassSizes[i-1])
		}
		if i+1 < len(cfg.ClassSizes) && sz != cfg.ClassSizes[i+1]*2 {
			return fmt.Errorf("segarena: ClassSizes[%d]=%d must be exactly twice ClassSizes[%d]=%d",
				i, sz, i+1, cfg.ClassSizes[i+1])
		}
	}
	if cfg.InitialLengths != nil && len(cfg.InitialLengths) != len(cfg.ClassSizes) {
		return fmt.Errorf("segarena: InitialLengths has %d entries, want %d (one per class)",
			len(cfg.InitialLengths), len(cfg.ClassSizes))
	}
	return nil
}
