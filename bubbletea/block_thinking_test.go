package bubbletea_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/sushilparjapat/relay"
	bt "github.com/sushilparjapat/relay/bubbletea"
)

func TestThinkingBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("collapsed shows indicator and label", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("deep thoughts here")
		view := block.View(80)
		assert.Contains(t, view, "▶")
		assert.Contains(t, view, "Thinking")
		assert.NotContains(t, view, "deep thoughts here")
	})

	t.Run("expanded shows content", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("deep thoughts here")
		updated, _ := block.Update(bt.ToggleMsg{})
		view := updated.(*bt.ThinkingBlock).View(80)
		assert.Contains(t, view, "▼")
		assert.Contains(t, view, "deep thoughts here")
	})

	t.Run("finalize switches label to duration", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("hmm")
		block.Finalize(3 * time.Second)
		view := block.View(80)
		assert.Contains(t, view, "Thought for 3s")
		assert.NotContains(t, view, "Thinking")
	})

	t.Run("finalize rounds sub-second durations", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Finalize(2600 * time.Millisecond)
		assert.Contains(t, block.View(80), "Thought for 3s")
	})

	t.Run("toggle via ToggleMsg", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("thoughts")
		// Starts collapsed.
		assert.NotContains(t, block.View(80), "thoughts")
		// ToggleMsg expands it.
		updated, _ := block.Update(bt.ToggleMsg{})
		block = updated.(*bt.ThinkingBlock)
		assert.Contains(t, block.View(80), "thoughts")
	})

	t.Run("wraps long content to width", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("short words that keep going and going beyond the viewport width easily")
		updated, _ := block.Update(bt.ToggleMsg{})
		view := updated.(*bt.ThinkingBlock).View(30)
		assert.Contains(t, view, "easily")
		lines := strings.Split(view, "\n")
		assert.Greater(t, len(lines), 2)
	})

	t.Run("unrecognized message does not change state", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("thoughts")
		updated, _ := block.Update(tea.KeyMsg{})
		view := updated.(*bt.ThinkingBlock).View(80)
		assert.NotContains(t, view, "thoughts")
		assert.Contains(t, view, "▶")
	})

	t.Run("append accumulates text", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(relay.DefaultTheme())
		block := bt.NewThinkingBlock(styles)
		block.Append("hello ")
		block.Append("world")
		updated, _ := block.Update(bt.ToggleMsg{})
		view := updated.(*bt.ThinkingBlock).View(80)
		assert.Contains(t, view, "hello world")
	})
}
