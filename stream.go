package relay

// Stream uses a pull-based iterator pattern over the backend's ordered chunk
// sequence. Next returns io.EOF when the stream is exhausted; any other error
// is terminal. Cancellation flows through the context passed to
// Provider.Chat.
//
// A Stream yields each chunk exactly once, in emission order. The phase
// boundary between thinking and answer is a property of the chunks, not of
// the stream: callers keep reading from the current position across the
// boundary.
type Stream interface {
	Next() (Chunk, error)
	Close() error
}
