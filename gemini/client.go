package gemini

import (
	"context"
	"fmt"

	"github.com/sushilparjapat/relay"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ relay.Provider = (*Client)(nil)

// Client implements [relay.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
}

// New creates a new Gemini [Client] with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Client{client: gc}, nil
}

// Chat sends a streaming request to the Gemini API and returns a
// [relay.Stream] over its chunk sequence.
func (c *Client) Chat(ctx context.Context, req relay.Request) (relay.Stream, error) {
	contents, system := convertMessages(req.Messages)

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
	}
	if req.Think {
		config.ThinkingConfig = &genai.ThinkingConfig{IncludeThoughts: true}
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	iter := c.client.Models.GenerateContentStream(ctx, req.Model, contents, config)
	return newStream(iter), nil
}

// convertMessages converts relay Messages to genai Contents. System-role
// context messages are folded into a single system instruction, since the
// Gemini API takes system text out-of-band.
func convertMessages(msgs []relay.Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	var system string
	for _, m := range msgs {
		switch m.Role {
		case relay.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		case relay.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}
	return contents, system
}
