// Package mock provides test doubles for relay interfaces using function fields.
package mock

import (
	"context"

	"github.com/sushilparjapat/relay"
)

// Interface compliance checks.
var (
	_ relay.Provider       = (*Provider)(nil)
	_ relay.Stream         = (*Stream)(nil)
	_ relay.DocumentReader = (*Reader)(nil)
)

// Provider is a test double for relay.Provider.
// Set ChatFn before calling Chat.
type Provider struct {
	ChatFn func(ctx context.Context, req relay.Request) (relay.Stream, error)
}

// Chat delegates to ChatFn.
func (p *Provider) Chat(ctx context.Context, req relay.Request) (relay.Stream, error) {
	return p.ChatFn(ctx, req)
}

// Stream is a test double for relay.Stream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe (no-op)
// because test code commonly calls defer stream.Close() without needing
// custom behavior.
type Stream struct {
	NextFn  func() (relay.Chunk, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (relay.Chunk, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Reader is a test double for relay.DocumentReader.
// Set ReadAllFn before calling ReadAll.
type Reader struct {
	ReadAllFn func(ctx context.Context, files []relay.File) ([]relay.Document, error)
}

// ReadAll delegates to ReadAllFn.
func (r *Reader) ReadAll(ctx context.Context, files []relay.File) ([]relay.Document, error) {
	return r.ReadAllFn(ctx, files)
}
