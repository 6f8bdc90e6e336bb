// Package config loads the relay configuration from a TOML file, with
// built-in defaults matching a stock local Ollama setup.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sushilparjapat/relay"
)

// Config is the complete relay configuration.
type Config struct {
	// Backend selects the provider: "ollama" or "gemini".
	Backend string `toml:"backend"`

	// Models is the enumerated model catalog the settings resolver
	// validates against. The first entry is the session default.
	Models []ModelConfig `toml:"models"`

	Ollama OllamaConfig `toml:"ollama"`
	Gemini GeminiConfig `toml:"gemini"`

	// DBPath is the SQLite transcript database ("" = default location).
	DBPath string `toml:"db_path"`
}

// ModelConfig is one catalog entry.
type ModelConfig struct {
	ID       string `toml:"id"`
	Thinking bool   `toml:"thinking"`
}

// OllamaConfig configures the local Ollama backend.
type OllamaConfig struct {
	// BaseURL of the server ("" = http://127.0.0.1:11434).
	BaseURL string `toml:"base_url"`
	// AutoStart spawns `ollama serve` when the server is not reachable.
	AutoStart bool `toml:"auto_start"`
}

// GeminiConfig configures the Gemini backend. The API key comes from the
// GEMINI_API_KEY environment variable, never from the config file.
type GeminiConfig struct {
	APIKeyEnv string `toml:"api_key_env"`
}

// Default returns the built-in configuration: local Ollama with the two
// stock models, thinking supported on qwen3 only.
func Default() Config {
	return Config{
		Backend: "ollama",
		Models: []ModelConfig{
			{ID: "qwen3:0.6b", Thinking: true},
			{ID: "qwen2.5:0.5b", Thinking: false},
		},
		Ollama: OllamaConfig{AutoStart: true},
		Gemini: GeminiConfig{APIKeyEnv: "GEMINI_API_KEY"},
	}
}

// Load reads the config file at path, layered over Default. A missing file
// is not an error: defaults apply. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, cfg.Validate()
			}
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations that would fail at settings-apply time:
// an empty catalog, duplicate model ids, or an unknown backend.
func (c Config) Validate() error {
	if len(c.Models) == 0 {
		return relay.ErrNoModels
	}
	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.ID == "" {
			return errors.New("config: model with empty id")
		}
		if seen[m.ID] {
			return fmt.Errorf("config: duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
	}
	switch c.Backend {
	case "ollama", "gemini":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}

// Catalog converts the configured models to the domain catalog.
func (c Config) Catalog() []relay.Model {
	models := make([]relay.Model, len(c.Models))
	for i, m := range c.Models {
		models[i] = relay.Model{ID: m.ID, Thinking: m.Thinking}
	}
	return models
}
