package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sushilparjapat/relay"
)

// maxLineSize bounds a single NDJSON line. Chunks are small; this is
// headroom for models that emit large single fragments.
const maxLineSize = 1 << 20

// stream implements [relay.Stream] by parsing newline-delimited JSON chunks
// from an HTTP response body.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	done    bool
	closed  bool
	err     error // terminal error, if any
}

// Interface compliance check.
var _ relay.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &stream{
		body:    body,
		scanner: scanner,
		ctx:     ctx,
	}
}

// chatChunk is the wire format of one streamed /api/chat line.
type chatChunk struct {
	Message struct {
		Role     string `json:"role"`
		Content  string `json:"content"`
		Thinking string `json:"thinking"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// Next reads the next chunk. Returns io.EOF after the done marker.
func (s *stream) Next() (relay.Chunk, error) {
	switch {
	case s.closed:
		return relay.Chunk{}, fmt.Errorf("ollama: %w", relay.ErrStreamClosed)
	case s.done:
		return relay.Chunk{}, io.EOF
	case s.err != nil:
		return relay.Chunk{}, s.err
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			if s.ctx.Err() != nil {
				err = s.ctx.Err()
			}
			s.err = fmt.Errorf("ollama: %w", err)
			return relay.Chunk{}, s.err
		}
		// Body exhausted without a done marker: the stream ended abruptly.
		s.err = fmt.Errorf("ollama: unexpected end of stream")
		return relay.Chunk{}, s.err
	}

	var cc chatChunk
	if err := json.Unmarshal(s.scanner.Bytes(), &cc); err != nil {
		s.err = fmt.Errorf("ollama: decode chunk: %w", err)
		return relay.Chunk{}, s.err
	}
	if cc.Error != "" {
		s.err = fmt.Errorf("ollama: %s", cc.Error)
		return relay.Chunk{}, s.err
	}
	if cc.Done {
		s.done = true
		// The done marker may still carry a trailing payload.
		if cc.Message.Content != "" || cc.Message.Thinking != "" {
			return relay.Chunk{Thinking: cc.Message.Thinking, Content: cc.Message.Content}, nil
		}
		return relay.Chunk{}, io.EOF
	}

	return relay.Chunk{Thinking: cc.Message.Thinking, Content: cc.Message.Content}, nil
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	s.closed = true
	return s.body.Close()
}
