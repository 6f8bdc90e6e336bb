package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

var _ MessageBlock = (*AnswerBlock)(nil)

// AnswerBlock renders streamed answer text with markdown formatting.
// Rendering is cached per (width, content length) so repeated Views while
// idle cost nothing; each delta invalidates the cache.
type AnswerBlock struct {
	content strings.Builder

	cachedWidth int
	cachedLen   int
	cached      string
}

// NewAnswerBlock creates a new block for streaming answer text.
func NewAnswerBlock() *AnswerBlock {
	return &AnswerBlock{}
}

// Append adds an answer text delta.
func (b *AnswerBlock) Append(text string) {
	b.content.WriteString(text)
}

func (b *AnswerBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AnswerBlock) View(width int) string {
	raw := b.content.String()
	if raw == "" || width <= 0 {
		return ""
	}
	if width == b.cachedWidth && len(raw) == b.cachedLen {
		return b.cached
	}

	src := raw
	if hasUnclosedFence(src) {
		// Close fence only for rendering so partial streams display safely.
		src += "\n```"
	}

	rendered, err := renderMarkdown(src, width)
	if err != nil {
		// Fall back to the raw text rather than hiding the answer.
		rendered = raw
	}

	b.cachedWidth = width
	b.cachedLen = len(raw)
	b.cached = rendered
	return rendered
}

func renderMarkdown(src string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(src)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// hasUnclosedFence detects whether s contains an unclosed fenced code block
// by checking for an odd number of "```" occurrences. Inline code spans
// containing literal triple backticks can fool this, but streaming LLM
// output rarely contains them.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
