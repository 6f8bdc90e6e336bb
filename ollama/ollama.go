// Package ollama implements [relay.Provider] for a local Ollama server.
//
// It speaks the /api/chat streaming protocol: one JSON object per line,
// each carrying an incremental message fragment with optional thinking and
// content fields, terminated by an object with done=true.
package ollama

const (
	defaultBaseURL = "http://127.0.0.1:11434"
	chatPath       = "/api/chat"
)
