// Package bubbletea provides the Bubble Tea chat TUI for relay.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sushilparjapat/relay"
)

// TurnFunc executes one conversation turn. The onEvent callback receives
// each incremental event. The function blocks until the turn completes or
// the context is cancelled.
type TurnFunc func(ctx context.Context, session *relay.Session, input relay.TurnInput, onEvent func(relay.Event)) error

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. When the context is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps an incremental event for delivery to the model.
type StreamEventMsg struct {
	Event relay.Event
}

// TurnDoneMsg signals that the current turn has completed.
type TurnDoneMsg struct {
	Err error
}
