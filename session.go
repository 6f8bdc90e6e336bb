package relay

import "time"

// StepType discriminates persisted transcript steps. Step types other than
// user and assistant messages are preserved by the data layer but ignored
// when replaying into a History.
type StepType string

const (
	StepUserMessage      StepType = "user_message"
	StepAssistantMessage StepType = "assistant_message"
)

// Step is one entry of a persisted session transcript.
type Step struct {
	Type   StepType
	Output string
	At     time.Time
}

// Session owns exactly one History and one set of user-chosen settings,
// keyed by an opaque identifier supplied by the surrounding session runtime.
// Sessions are exclusively owned: the runtime serializes turns, so Session
// carries no locking.
type Session struct {
	ID        string
	History   *History
	Settings  RawSettings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession initializes a session with an empty History and default
// settings (first catalog model, thinking requested).
func NewSession(id string, models []Model) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		History:   &History{},
		Settings:  DefaultSettings(models),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ResumeSession initializes a session like NewSession and then replays a
// persisted transcript into its History: user_message steps become user
// Messages, assistant_message steps become assistant Messages, in original
// order. Other step types contribute nothing.
func ResumeSession(id string, models []Model, steps []Step) *Session {
	s := NewSession(id, models)
	s.History.Reset()
	for _, step := range steps {
		switch step.Type {
		case StepUserMessage:
			s.History.Append(UserMessage(step.Output, step.At))
		case StepAssistantMessage:
			s.History.Append(AssistantMessage(step.Output, step.At))
		}
	}
	return s
}

// Transcript converts the session's History back into persistable steps.
// System context messages are part of the model-facing history only and are
// not persisted, matching what the user actually saw.
func (s *Session) Transcript() []Step {
	var steps []Step
	for _, msg := range s.History.Snapshot() {
		switch msg.Role {
		case RoleUser:
			steps = append(steps, Step{Type: StepUserMessage, Output: msg.Content, At: msg.Timestamp})
		case RoleAssistant:
			steps = append(steps, Step{Type: StepAssistantMessage, Output: msg.Content, At: msg.Timestamp})
		}
	}
	return steps
}
