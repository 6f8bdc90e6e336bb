package bubbletea

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ThinkingBlock)(nil)

// ThinkingBlock renders the thinking trace with a collapsible toggle.
// While the phase is running the header reads "Thinking"; once the phase
// boundary arrives it becomes "Thought for Ns".
type ThinkingBlock struct {
	content   strings.Builder
	duration  time.Duration
	finalized bool
	collapsed bool
	styles    Styles
}

// NewThinkingBlock creates a ThinkingBlock that starts collapsed.
func NewThinkingBlock(styles Styles) *ThinkingBlock {
	return &ThinkingBlock{collapsed: true, styles: styles}
}

// Append adds a thinking text delta.
func (b *ThinkingBlock) Append(text string) {
	b.content.WriteString(text)
}

// Finalize marks the thinking phase complete with its measured duration.
func (b *ThinkingBlock) Finalize(d time.Duration) {
	b.duration = d
	b.finalized = true
}

func (b *ThinkingBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ThinkingBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	label := "Thinking"
	if b.finalized {
		label = fmt.Sprintf("Thought for %ds", int(b.duration.Round(time.Second).Seconds()))
	}
	header := b.styles.Thinking.Render(wrap.Render(indicator + " " + label))
	if b.collapsed {
		return header
	}
	content := b.styles.Thinking.Render(wrap.Render(b.content.String()))
	return header + "\n" + content
}
