package bubbletea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sushilparjapat/relay"
	bt "github.com/sushilparjapat/relay/bubbletea"
)

func TestDocumentsBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("lists document names", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewDocumentsBlock([]string{"notes.txt", "paper.pdf"}, styles)
		view := block.View(80)
		assert.Contains(t, view, "Read documents")
		assert.Contains(t, view, "notes.txt, paper.pdf")
	})
}
