// Package json persists session transcripts as versioned JSON envelopes.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sushilparjapat/relay"
)

// envelope is the v1 wire format for a persisted transcript.
type envelope struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Steps     []stepDTO `json:"steps"`
}

// stepDTO is the JSON representation of a transcript step. Unknown step
// types round-trip unchanged; they are only filtered at replay time.
type stepDTO struct {
	Type   string    `json:"type"`
	Output string    `json:"output"`
	At     time.Time `json:"at,omitempty"`
}

// Transcript pairs a session's identity with its persisted steps.
type Transcript struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Steps     []relay.Step
}

// Marshal serializes a Transcript to JSON in v1 envelope format.
func Marshal(tr Transcript) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        tr.ID,
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
		Steps:     make([]stepDTO, len(tr.Steps)),
	}
	for i, s := range tr.Steps {
		env.Steps[i] = stepDTO{Type: string(s.Type), Output: s.Output, At: s.At}
	}
	return json.MarshalIndent(env, "", "  ")
}

// Unmarshal deserializes a Transcript from JSON in v1 envelope format.
func Unmarshal(data []byte) (Transcript, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Transcript{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return Transcript{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	tr := Transcript{
		ID:        env.ID,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		Steps:     make([]relay.Step, len(env.Steps)),
	}
	for i, s := range env.Steps {
		tr.Steps[i] = relay.Step{Type: relay.StepType(s.Type), Output: s.Output, At: s.At}
	}
	return tr, nil
}

// Save writes a Transcript to a JSON file, creating parent directories as
// needed. The write is atomic: temp file then rename.
func Save(path string, tr Transcript) error {
	data, err := Marshal(tr)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Transcript from a JSON file.
func Load(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("read file: %w", err)
	}
	return Unmarshal(data)
}
