package relay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushilparjapat/relay"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	s := relay.NewSession("s1", testModels)
	assert.Equal(t, "s1", s.ID)
	assert.Zero(t, s.History.Len())
	assert.Equal(t, relay.RawSettings{Model: "qwen3:0.6b", Think: true}, s.Settings)
}

func TestResumeSession(t *testing.T) {
	t.Parallel()

	t.Run("replays user and assistant steps in order", func(t *testing.T) {
		t.Parallel()
		steps := []relay.Step{
			{Type: relay.StepUserMessage, Output: "hi"},
			{Type: relay.StepAssistantMessage, Output: "hello"},
			{Type: relay.StepUserMessage, Output: "how are you"},
			{Type: relay.StepAssistantMessage, Output: "fine"},
		}

		s := relay.ResumeSession("s1", testModels, steps)

		snap := s.History.Snapshot()
		require.Len(t, snap, 4)
		assert.Equal(t, relay.RoleUser, snap[0].Role)
		assert.Equal(t, "hi", snap[0].Content)
		assert.Equal(t, relay.RoleAssistant, snap[1].Role)
		assert.Equal(t, "hello", snap[1].Content)
		assert.Equal(t, relay.RoleUser, snap[2].Role)
		assert.Equal(t, relay.RoleAssistant, snap[3].Role)
		assert.Equal(t, "fine", snap[3].Content)
	})

	t.Run("non-message steps contribute nothing", func(t *testing.T) {
		t.Parallel()
		steps := []relay.Step{
			{Type: "run", Output: "internal"},
			{Type: relay.StepUserMessage, Output: "hi"},
			{Type: "tool", Output: "ls -la"},
			{Type: relay.StepAssistantMessage, Output: "hello"},
		}

		s := relay.ResumeSession("s1", testModels, steps)

		snap := s.History.Snapshot()
		require.Len(t, snap, 2)
		assert.Equal(t, "hi", snap[0].Content)
		assert.Equal(t, "hello", snap[1].Content)
	})

	t.Run("resume applies default settings", func(t *testing.T) {
		t.Parallel()
		s := relay.ResumeSession("s1", testModels, nil)
		assert.Equal(t, relay.DefaultSettings(testModels), s.Settings)
	})
}

func TestSession_Transcript(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := relay.NewSession("s1", testModels)
	s.History.Append(relay.SystemMessage("uploaded files", now))
	s.History.Append(relay.UserMessage("hi", now))
	s.History.Append(relay.AssistantMessage("hello", now))

	steps := s.Transcript()
	require.Len(t, steps, 2)
	assert.Equal(t, relay.StepUserMessage, steps[0].Type)
	assert.Equal(t, "hi", steps[0].Output)
	assert.Equal(t, relay.StepAssistantMessage, steps[1].Type)
	assert.Equal(t, "hello", steps[1].Output)
}

func TestTranscriptRoundTrip(t *testing.T) {
	t.Parallel()

	s := relay.NewSession("s1", testModels)
	now := time.Now()
	s.History.Append(relay.UserMessage("q", now))
	s.History.Append(relay.AssistantMessage("a", now))

	resumed := relay.ResumeSession("s1", testModels, s.Transcript())
	assert.Equal(t, s.History.Snapshot(), resumed.History.Snapshot())
}
