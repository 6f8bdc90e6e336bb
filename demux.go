package relay

import (
	"io"
	"time"
)

// phase is the demultiplexer's cursor over one turn's chunk stream.
//
// The stream is consumed in a single pass: the thinking→answer boundary is
// detected without consuming the triggering chunk's content payload, so a
// chunk that both ends the thinking phase and carries answer text
// contributes to the answer in the same iteration. This is the one place a
// careless implementation could drop or duplicate a chunk.
type phase int

const (
	phaseIdle phase = iota // before the first chunk
	phaseThinking
	phaseAnswering
)

// TurnResult is the outcome of demultiplexing one turn's chunk stream.
// Thought reports whether a thinking phase occurred; ThinkingDuration is
// meaningful only when it did.
type TurnResult struct {
	Answer           string
	ThinkingDuration time.Duration
	Thought          bool
}

// Demux routes one ordered chunk stream into the thinking and answer event
// channels, detects the thinking→answer boundary, and accumulates the final
// answer text. The zero value uses the wall clock.
type Demux struct {
	// Now is the clock used to measure thinking duration. Nil means time.Now.
	Now func() time.Time
}

// Consume reads the stream to exhaustion, emitting an event per routed
// payload through onEvent (nil discards events). With think disabled no
// thinking scan is performed at all: every chunk is treated as answer
// content regardless of its thinking payload, matching the settings
// invariant that thinking is suppressed per-model.
//
// Within one turn all thinking emissions strictly precede all answer
// emissions. On a stream error the answer accumulated so far is returned
// alongside the error so the caller can keep the transcript consistent with
// what was shown.
func (d *Demux) Consume(stream Stream, think bool, onEvent func(Event)) (TurnResult, error) {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	emit := onEvent
	if emit == nil {
		emit = func(Event) {}
	}

	var (
		res     TurnResult
		answer  []byte
		state   = phaseIdle
		started time.Time
	)

	finishThinking := func() {
		res.Thought = true
		res.ThinkingDuration = now().Sub(started)
		emit(EventThinkingDone{Duration: res.ThinkingDuration})
		state = phaseAnswering
	}

	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if state == phaseThinking {
				finishThinking()
			}
			res.Answer = string(answer)
			return res, err
		}

		if !think {
			// No thinking scan: content only, whatever the chunk carries.
			if chunk.Content != "" {
				answer = append(answer, chunk.Content...)
				emit(EventAnswerDelta{Delta: chunk.Content})
			}
			continue
		}

		switch state {
		case phaseIdle:
			if chunk.Thinking != "" {
				state = phaseThinking
				started = now()
				emit(EventThinkingDelta{Delta: chunk.Thinking})
				continue
			}
			if chunk.Content == "" {
				// Payloadless keep-alive before the first real chunk;
				// the phase is still undecided.
				continue
			}
			state = phaseAnswering
		case phaseThinking:
			if chunk.Thinking != "" {
				emit(EventThinkingDelta{Delta: chunk.Thinking})
				continue
			}
			// First chunk without a thinking payload is the boundary. Its
			// content (if any) belongs to the answer and is handled below.
			finishThinking()
		case phaseAnswering:
			// Thinking payloads past the boundary should not occur; ignore.
		}

		if chunk.Content != "" {
			answer = append(answer, chunk.Content...)
			emit(EventAnswerDelta{Delta: chunk.Content})
		}
	}

	if state == phaseThinking {
		// Stream ended while still thinking; close the phase so the UI
		// label is still updated.
		finishThinking()
	}

	res.Answer = string(answer)
	return res, nil
}
