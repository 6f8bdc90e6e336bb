package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*DocumentsBlock)(nil)

// DocumentsBlock is the visible "reading documents" phase marker, listing
// the documents that were folded into context for the turn.
type DocumentsBlock struct {
	names  []string
	styles Styles
}

// NewDocumentsBlock creates a DocumentsBlock.
func NewDocumentsBlock(names []string, styles Styles) *DocumentsBlock {
	return &DocumentsBlock{names: names, styles: styles}
}

func (b *DocumentsBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *DocumentsBlock) View(width int) string {
	content := b.styles.Muted.Render("Read documents: " + strings.Join(b.names, ", "))
	return lipgloss.NewStyle().Width(width).Render(content)
}
