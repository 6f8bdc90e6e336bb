package mock

import (
	"io"

	"github.com/sushilparjapat/relay"
)

// ChunkStream returns a Stream that yields the given chunks in order and
// then io.EOF. Convenient for demultiplexer and orchestrator tests.
func ChunkStream(chunks ...relay.Chunk) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (relay.Chunk, error) {
			if i >= len(chunks) {
				return relay.Chunk{}, io.EOF
			}
			c := chunks[i]
			i++
			return c, nil
		},
	}
}

// FailingStream returns a Stream that yields the given chunks in order and
// then fails with err instead of io.EOF.
func FailingStream(err error, chunks ...relay.Chunk) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (relay.Chunk, error) {
			if i >= len(chunks) {
				return relay.Chunk{}, err
			}
			c := chunks[i]
			i++
			return c, nil
		},
	}
}
