package relay

// History is the ordered, append-only message record for one session.
// It is mutated only by appends (never deletion or reorder), except for
// Reset, which is reserved for session lifecycle (start/resume).
//
// History is not safe for concurrent use. Each session owns exactly one
// History and the surrounding runtime serializes turns per session, so no
// locking is required.
//
// No size cap is applied; truncation/windowing policy is out of scope.
type History struct {
	messages []Message
}

// Append adds a message to the end of the history.
func (h *History) Append(msg Message) {
	h.messages = append(h.messages, msg)
}

// Snapshot returns a copy of the message sequence in conversation order.
// The copy prevents callers from mutating appended messages.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages in the history.
func (h *History) Len() int {
	return len(h.messages)
}

// Reset discards all messages. Reserved for session lifecycle.
func (h *History) Reset() {
	h.messages = nil
}
