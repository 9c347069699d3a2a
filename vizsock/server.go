// Package vizsock is the optional diagnostic transport for a
// segarena.Arena: it accepts connections and streams the arena's
// current layout as a sequence of fixed-size records, mirroring
// struct ArenaVizBlk from the allocator's original C interface.
//
// vizsock deliberately lives outside package segarena, which never
// imports net, so a build that never wires this package in stays
// viable for embedded/bare-metal targets (see segarena's package doc).
package vizsock

import (
	"log"
	"net"

	"github.com/cloudwego/gopkg/bufiox"
	"github.com/cloudwego/gopkg/cache/mempool"
	"github.com/cloudwego/gopkg/concurrency/gopool"

	"github.com/segfit/segarena"
)

// recordLen is the wire size of one block record: two uint64s,
// (offset, length), matching ArenaVizBlk in original_source/inc/vizable.h.
const recordLen = 16

// Server accepts connections on a listener and, for each one, writes
// the current layout of an Arena as a sequence of recordLen-byte
// records, then closes the connection. It holds no per-connection
// state between calls: every connection gets a fresh snapshot.
type Server struct {
	arena  segarena.Vizable
	pool   *gopool.GoPool
	Logger *log.Logger
}

// NewServer returns a Server reporting on arena. Connections are
// dispatched through a bounded goroutine pool (package gopool) instead
// of a bare `go` per connection, so a burst of diagnostic clients can't
// unboundedly spawn OS threads.
func NewServer(arena segarena.Vizable) *Server {
	return &Server{
		arena: arena,
		pool:  gopool.NewGoPool("vizsock", nil),
	}
}

// Serve accepts connections on ln until it returns an error (typically
// because ln was closed). Each accepted connection is handled on the
// server's goroutine pool.
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		s.pool.Go(func() {
			s.handle(conn)
		})
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	// A nil buf is always "too small" unless the arena has zero
	// allocated blocks, so the error here only ever reports back the
	// true count - it's how callers are meant to size their buffer.
	n, _ := s.arena.ArenaLayout(nil)
	if n == 0 {
		return
	}

	entries := make([]segarena.VizEntry, n)
	if _, err := s.arena.ArenaLayout(entries); err != nil {
		s.logf("vizsock: ArenaLayout: %v", err)
		return
	}

	// scratch is the encoding buffer for the whole batch, reused across
	// connections via the pool instead of a fresh make() per snapshot.
	scratch := mempool.Malloc(n * recordLen)
	defer mempool.Free(scratch)

	for i, e := range entries {
		rec := scratch[i*recordLen : (i+1)*recordLen]
		putUint64(rec[0:8], uint64(e.Offset))
		putUint64(rec[8:16], uint64(e.Length))
	}

	w := bufiox.NewDefaultWriter(conn)
	if _, err := w.WriteBinary(scratch); err != nil {
		s.logf("vizsock: write: %v", err)
		return
	}
	if err := w.Flush(); err != nil {
		s.logf("vizsock: flush: %v", err)
	}
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func putUint64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}
