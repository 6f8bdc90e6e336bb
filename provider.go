package relay

import "context"

// Provider is a strategy pattern interface for text-generation backends.
type Provider interface {
	Chat(ctx context.Context, req Request) (Stream, error)
}

// Request carries model selection and the conversation to generate from.
// Think asks the backend to emit a thinking trace ahead of the answer;
// backends that cannot honor it emit content chunks only.
type Request struct {
	Model    string
	Messages []Message
	Think    bool
}
