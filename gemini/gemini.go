// Package gemini implements [relay.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between relay's
// domain types and the Gemini API types. Streaming uses the SDK's iter.Seq2
// iterator, wrapped into the pull-based [relay.Stream] interface. Thought
// parts map to thinking chunks when the request asks for them.
package gemini

const defaultMaxTokens = 65536
