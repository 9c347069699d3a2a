// Package vizclient is the reader half of vizsock's wire format: it
// decodes the (offset uint64, length uint64) records a vizsock.Server
// streams for each allocated block.
package vizclient

import (
	"io"

	"github.com/cloudwego/gopkg/bufiox"

	"github.com/segfit/segarena"
)

const recordLen = 16

// ReadLayout reads every record available from r until EOF and returns
// them as VizEntry values, matching segarena.Vizable.ArenaLayout's
// return shape on the server side of the connection.
func ReadLayout(r io.Reader) ([]segarena.VizEntry, error) {
	reader := bufiox.NewDefaultReader(r)

	var entries []segarena.VizEntry
	for {
		buf, err := reader.Next(recordLen)
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, segarena.VizEntry{
			Offset: int(getUint64(buf[0:8])),
			Length: int(getUint64(buf[8:16])),
		})
	}
	return entries, nil
}

func getUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
