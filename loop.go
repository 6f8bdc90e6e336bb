package relay

import (
	"context"
	"fmt"
	"time"
)

// Loop orchestrates conversation turns between a Provider and a
// DocumentReader, owning the per-turn flow: settings resolution, document
// folding, history appends, and stream demultiplexing.
type Loop struct {
	provider Provider
	reader   DocumentReader
	models   []Model
	demux    Demux
}

// NewLoop creates a Loop over the given provider, document reader, and
// model catalog. The reader may be nil when attachments are never used.
func NewLoop(provider Provider, reader DocumentReader, models []Model) *Loop {
	return &Loop{provider: provider, reader: reader, models: models}
}

// TurnInput is one incoming user turn: the message text plus any attached
// files to fold into context before it.
type TurnInput struct {
	Text  string
	Files []File
}

// TurnOption configures a single Turn invocation.
type TurnOption func(*turnConfig)

type turnConfig struct {
	onEvent func(Event)
}

// WithEventHandler sets a callback that receives each incremental event
// during the turn. If nil or not set, events are silently discarded.
func WithEventHandler(h func(Event)) TurnOption {
	return func(c *turnConfig) {
		c.onEvent = h
	}
}

// Models returns the enumerated model catalog the loop resolves against.
func (l *Loop) Models() []Model {
	return l.models
}

// Turn executes one conversation turn against the session. Settings are
// re-resolved from the session's current raw settings; a configuration
// error aborts before any history mutation. After the backend stream is
// demultiplexed the accumulated answer (partial on a stream error) is
// appended to the session's History, so the persisted transcript stays
// consistent with what was shown.
func (l *Loop) Turn(ctx context.Context, session *Session, input TurnInput, opts ...TurnOption) (TurnResult, error) {
	var cfg turnConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	settings, err := ResolveSettings(l.models, session.Settings)
	if err != nil {
		return TurnResult{}, err
	}

	if err := l.foldDocuments(ctx, session, input.Files, &cfg); err != nil {
		return TurnResult{}, err
	}

	session.History.Append(UserMessage(input.Text, time.Now()))
	session.UpdatedAt = time.Now()

	stream, err := l.provider.Chat(ctx, Request{
		Model:    settings.Model,
		Messages: session.History.Snapshot(),
		Think:    settings.Think,
	})
	if err != nil {
		return TurnResult{}, fmt.Errorf("chat: %w", err)
	}
	defer stream.Close()

	res, streamErr := l.demux.Consume(stream, settings.Think, cfg.onEvent)

	// The assistant turn is recorded even when the stream failed partway:
	// the transcript must match what the user saw.
	session.History.Append(AssistantMessage(res.Answer, time.Now()))
	session.UpdatedAt = time.Now()

	if streamErr != nil {
		return res, fmt.Errorf("stream: %w", streamErr)
	}
	return res, nil
}

// foldDocuments extracts attached files and appends a single system context
// message when anything was extracted. Zero attachments skip the phase
// entirely; extraction failures of individual documents are the reader's
// concern and never abort the turn.
func (l *Loop) foldDocuments(ctx context.Context, session *Session, files []File, cfg *turnConfig) error {
	if len(files) == 0 || l.reader == nil {
		return nil
	}
	docs, err := l.reader.ReadAll(ctx, files)
	if err != nil {
		return fmt.Errorf("read documents: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}
	if cfg.onEvent != nil {
		names := make([]string, len(docs))
		for i, d := range docs {
			names[i] = d.Name
		}
		cfg.onEvent(EventDocumentsRead{Names: names})
	}
	session.History.Append(FoldDocuments(docs, time.Now()))
	return nil
}
