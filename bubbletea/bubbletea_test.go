package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/sushilparjapat/relay"
	bt "github.com/sushilparjapat/relay/bubbletea"
)

var testModels = []relay.Model{
	{ID: "qwen3:0.6b", Thinking: true},
	{ID: "qwen2.5:0.5b", Thinking: false},
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, run bt.TurnFunc) bt.Model {
	t.Helper()
	session := relay.NewSession("s1", testModels)
	m := bt.New(run, session, testModels, relay.DefaultTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, run bt.TurnFunc, width, height int) bt.Model {
	t.Helper()
	session := relay.NewSession("s1", testModels)
	m := bt.New(run, session, testModels, relay.DefaultTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopTurn is a turn function that does nothing.
func nopTurn(_ context.Context, _ *relay.Session, _ relay.TurnInput, _ func(relay.Event)) error {
	return nil
}
