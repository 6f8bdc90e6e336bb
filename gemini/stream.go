package gemini

import (
	"fmt"
	"io"
	"iter"

	"github.com/sushilparjapat/relay"
	"google.golang.org/genai"
)

// stream implements [relay.Stream] by wrapping the genai SDK's streaming
// iterator. Each SDK response becomes one chunk; thought parts land in the
// thinking payload, the rest in content.
type stream struct {
	pull   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	done   bool
	closed bool
	err    error
}

// Interface compliance check.
var _ relay.Stream = (*stream)(nil)

func newStream(iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{pull: next, stop: stop}
}

func (s *stream) Next() (relay.Chunk, error) {
	switch {
	case s.closed:
		return relay.Chunk{}, fmt.Errorf("gemini: %w", relay.ErrStreamClosed)
	case s.done:
		return relay.Chunk{}, io.EOF
	case s.err != nil:
		return relay.Chunk{}, s.err
	}

	resp, err, ok := s.pull()
	if !ok {
		s.done = true
		return relay.Chunk{}, io.EOF
	}
	if err != nil {
		s.err = fmt.Errorf("gemini: %w", err)
		return relay.Chunk{}, s.err
	}
	return convertResponse(resp), nil
}

func (s *stream) Close() error {
	s.closed = true
	s.stop()
	return nil
}

func convertResponse(resp *genai.GenerateContentResponse) relay.Chunk {
	var chunk relay.Chunk
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if part.Thought {
				chunk.Thinking += part.Text
			} else {
				chunk.Content += part.Text
			}
		}
	}
	return chunk
}
