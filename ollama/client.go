package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sushilparjapat/relay"
)

// Interface compliance check.
var _ relay.Provider = (*Client)(nil)

// Client implements [relay.Provider] for the Ollama chat API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the server base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Ollama [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends a streaming chat request and returns a [relay.Stream] over the
// server's ordered chunk sequence.
func (c *Client) Chat(ctx context.Context, req relay.Request) (relay.Stream, error) {
	body, err := json.Marshal(apiRequest{
		Model:    req.Model,
		Messages: convertMessages(req.Messages),
		Stream:   true,
		Think:    req.Think,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(ctx, resp.Body), nil
}

// apiRequest is the wire format of a /api/chat request.
type apiRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Stream   bool         `json:"stream"`
	Think    bool         `json:"think"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func convertMessages(msgs []relay.Message) []apiMessage {
	out := make([]apiMessage, len(msgs))
	for i, m := range msgs {
		out[i] = apiMessage{Role: string(m.Role), Content: m.Content}
	}
	return out
}

// parseHTTPError extracts the server's error payload from a non-200 response.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ollama: http %d", resp.StatusCode)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
		return fmt.Errorf("ollama: http %d: %s", resp.StatusCode, body)
	}
	return fmt.Errorf("ollama: http %d: %s", resp.StatusCode, payload.Error)
}
