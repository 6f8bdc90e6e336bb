package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/sushilparjapat/relay"
	"github.com/sushilparjapat/relay/extract"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the relay chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model
	// AttachDir is the directory /attach patterns are resolved against.
	AttachDir string

	run     TurnFunc
	session *relay.Session
	models  []relay.Model
	styles  Styles

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)

	// Active blocks for event correlation within the current turn.
	activeThinking *ThinkingBlock
	activeAnswer   *AnswerBlock

	// pending holds attachments staged with /attach for the next message.
	pending []relay.File

	running bool
	cancel  context.CancelFunc
	eventCh chan relay.Event
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a new TUI Model over the given turn function, session, model
// catalog, and theme. The session's settings are mutated in place as the
// user toggles thinking or cycles models; the orchestrator re-reads them
// every turn.
func New(run TurnFunc, session *relay.Session, models []relay.Model, theme relay.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message, or /attach <pattern>..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:      ti,
		AttachDir:  ".",
		run:        run,
		session:    session,
		models:     models,
		styles:     NewStyles(theme),
		blockFocus: -1,
	}
}

// SetRunning is a test helper that puts the model in a running state.
func SetRunning(m Model) (Model, tea.Cmd) {
	m.running = true
	return m, nil
}

// SetRunningWithCancel is a test helper that puts the model in a running state
// with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Running returns whether a turn is currently in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case TurnDoneMsg:
		m.running = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		m.activeThinking = nil
		m.activeAnswer = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
			m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoBottom()
		}
		m = m.updateBlockFocus()
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyCtrlT:
		if !m.running {
			m.session.Settings.Think = !m.session.Settings.Think
		}
		return m, nil

	case tea.KeyCtrlO:
		if !m.running {
			m = m.cycleModel()
		}
		return m, nil

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		if pattern, ok := strings.CutPrefix(text, "/attach "); ok {
			return m.stageAttachments(strings.TrimSpace(pattern))
		}
		return m.submitInput(text)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// cycleModel advances the session's model selection through the catalog.
// The thinking toggle is left as-is; the resolver forces it off per-model.
func (m Model) cycleModel() Model {
	for i, model := range m.models {
		if model.ID == m.session.Settings.Model {
			m.session.Settings.Model = m.models[(i+1)%len(m.models)].ID
			return m
		}
	}
	if len(m.models) > 0 {
		m.session.Settings.Model = m.models[0].ID
	}
	return m
}

// stageAttachments expands an /attach glob and stages the matches for the
// next message.
func (m Model) stageAttachments(pattern string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	files, err := extract.Collect(m.AttachDir, pattern)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.pending = append(m.pending, files...)
	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	input := relay.TurnInput{Text: text, Files: m.pending}
	m.pending = nil

	// The user message block is appended up front; the orchestrator owns
	// the History append.
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.activeThinking = nil
	m.activeAnswer = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan relay.Event, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startTurn(m.run, ctx, m.session, input, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

// renderSession creates blocks from the session's existing history, so a
// resumed transcript is visible on startup. System context messages are
// model-facing only and are not rendered.
func (m Model) renderSession() Model {
	for _, msg := range m.session.History.Snapshot() {
		switch msg.Role {
		case relay.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
		case relay.RoleAssistant:
			block := NewAnswerBlock()
			block.Append(msg.Content)
			m.blocks = append(m.blocks, block)
		}
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent routes an incremental event to the appropriate block.
func (m Model) processEvent(evt relay.Event) Model {
	switch e := evt.(type) {
	case relay.EventDocumentsRead:
		m.blocks = append(m.blocks, NewDocumentsBlock(e.Names, m.styles))
	case relay.EventThinkingDelta:
		if m.activeThinking == nil {
			m.activeThinking = NewThinkingBlock(m.styles)
			m.blocks = append(m.blocks, m.activeThinking)
			m = m.updateBlockFocus()
		}
		m.activeThinking.Append(e.Delta)
	case relay.EventThinkingDone:
		if m.activeThinking != nil {
			m.activeThinking.Finalize(e.Duration)
		}
	case relay.EventAnswerDelta:
		if m.activeAnswer == nil {
			m.activeAnswer = NewAnswerBlock()
			m.blocks = append(m.blocks, m.activeAnswer)
		}
		m.activeAnswer.Append(e.Delta)
	}
	return m
}

// updateBlockFocus scans backwards to find the last collapsible block.
// Only the focused block responds to Tab; ShiftTab cycles to the previous
// collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if _, ok := m.blocks[i].(*ThinkingBlock); ok {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if _, ok := m.blocks[idx].(*ThinkingBlock); ok {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(truncate(fmt.Sprintf("Error: %v", m.err), m.Viewport.Width))
	}

	think := "off"
	if m.session.Settings.Think {
		think = "on"
	}
	status := fmt.Sprintf("%s · thinking %s", m.session.Settings.Model, think)
	if n := len(m.pending); n > 0 {
		status += fmt.Sprintf(" · %d attachment(s) staged", n)
	}
	if m.running {
		status += " · generating..."
	} else {
		status += " · Ctrl+T think · Ctrl+O model · Ctrl+C quit"
	}
	return m.styles.Muted.Render(truncate(status, m.Viewport.Width))
}

// truncate clips s to the given display width, accounting for wide runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// startTurn runs one turn in a goroutine and signals completion.
func startTurn(run TurnFunc, ctx context.Context, session *relay.Session, input relay.TurnInput, eventCh chan<- relay.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := run(ctx, session, input, func(e relay.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns TurnDoneMsg.
func listenForEvent(ch <-chan relay.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return TurnDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
