package relay

import "fmt"

// Model is one entry in the enumerated model catalog. Thinking reports
// whether the model can emit a thinking trace.
type Model struct {
	ID       string
	Thinking bool
}

// RawSettings are the user-chosen generation settings: a model selector over
// the catalog and a thinking toggle. They are re-read every turn because the
// user can change them mid-session.
type RawSettings struct {
	Model string
	Think bool
}

// Settings are effective generation settings after capability resolution.
// Invariant: Think is false whenever the selected model does not support
// thinking. This is the only cross-field invariant.
type Settings struct {
	Model string
	Think bool
}

// ResolveSettings derives effective Settings from user-chosen settings and
// the model catalog. A model id outside the catalog is a configuration
// error wrapping ErrUnknownModel; the turn must not start. Pure function;
// callers re-resolve on every turn rather than caching at session start.
func ResolveSettings(models []Model, raw RawSettings) (Settings, error) {
	if len(models) == 0 {
		return Settings{}, ErrNoModels
	}
	for _, m := range models {
		if m.ID == raw.Model {
			return Settings{
				Model: m.ID,
				Think: raw.Think && m.Thinking,
			}, nil
		}
	}
	return Settings{}, fmt.Errorf("%q: %w", raw.Model, ErrUnknownModel)
}

// DefaultSettings returns the session-start defaults: the first model in the
// catalog with thinking requested. Resolution still forces Think off when
// the first model cannot think.
func DefaultSettings(models []Model) RawSettings {
	if len(models) == 0 {
		return RawSettings{}
	}
	return RawSettings{Model: models[0].ID, Think: true}
}
