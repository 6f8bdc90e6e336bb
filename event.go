package relay

import "time"

// Event is a sealed interface representing an incremental emission to the
// UI. Events are purely semantic: the thinking and answer channels of one
// turn, plus phase markers. Transport errors come from error returns, not
// from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventThinkingDelta represents a thinking-trace text delta.
type EventThinkingDelta struct {
	Delta string
}

func (EventThinkingDelta) event() {}

// EventThinkingDone marks the thinking→answer phase boundary and carries
// how long the thinking phase lasted.
type EventThinkingDone struct {
	Duration time.Duration
}

func (EventThinkingDone) event() {}

// EventAnswerDelta represents an answer text delta.
type EventAnswerDelta struct {
	Delta string
}

func (EventAnswerDelta) event() {}

// EventDocumentsRead signals that attached documents were extracted and
// folded into context, naming the documents that yielded text.
type EventDocumentsRead struct {
	Names []string
}

func (EventDocumentsRead) event() {}

// Interface compliance checks.
var (
	_ Event = EventThinkingDelta{}
	_ Event = EventThinkingDone{}
	_ Event = EventAnswerDelta{}
	_ Event = EventDocumentsRead{}
)
