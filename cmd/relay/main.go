// Command relay is a local streaming chat TUI with reasoning-trace
// separation and document attachments.
//
// Usage:
//
//	relay [flags]
//	GEMINI_API_KEY=gk-... relay -backend gemini [flags]
//
// Flags:
//
//	-config string   Path to TOML config file (default: ~/.relay/config.toml)
//	-session string  Thread id to resume (default: new thread)
//	-db string       Path to SQLite transcript database (overrides config)
//	-backend string  Backend: ollama, gemini (overrides config)
//	-export string   Write the transcript to a JSON file on exit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sushilparjapat/relay"
	bt "github.com/sushilparjapat/relay/bubbletea"
	"github.com/sushilparjapat/relay/config"
	"github.com/sushilparjapat/relay/extract"
	"github.com/sushilparjapat/relay/gemini"
	relayjson "github.com/sushilparjapat/relay/json"
	"github.com/sushilparjapat/relay/ollama"
	"github.com/sushilparjapat/relay/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "relay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse flags.
	var (
		configPath  = flag.String("config", defaultConfigPath(), "Path to TOML config file")
		sessionID   = flag.String("session", "", "Thread id to resume")
		dbPath      = flag.String("db", "", "Path to SQLite transcript database (overrides config)")
		backendFlag = flag.String("backend", "", "Backend: ollama, gemini (overrides config)")
		exportPath  = flag.String("export", "", "Write the transcript to a JSON file on exit")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	models := cfg.Catalog()

	provider, err := resolveProvider(ctx, cfg)
	if err != nil {
		return err
	}

	// Open the transcript store and load or create the session.
	store, err := sqlite.Open(storePath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	session, err := loadOrCreateSession(ctx, store, *sessionID, models)
	if err != nil {
		return err
	}

	loop := relay.NewLoop(provider, extract.NewReader(), models)

	// Turn function closure for the TUI.
	turnFn := func(ctx context.Context, s *relay.Session, input relay.TurnInput, onEvent func(relay.Event)) error {
		_, err := loop.Turn(ctx, s, input, relay.WithEventHandler(onEvent))
		return err
	}

	tuiModel := bt.New(turnFn, session, models, relay.DefaultTheme())
	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Persist the transcript on exit. A session that never got a message
	// leaves no thread behind.
	steps := session.Transcript()
	if len(steps) > 0 {
		// Use a fresh context: the signal context may already be cancelled.
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.SaveTranscript(saveCtx, session.ID, steps); err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Thread %s saved\n", session.ID)
	}

	if *exportPath != "" {
		tr := relayjson.Transcript{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
			Steps:     steps,
		}
		if err := relayjson.Save(*exportPath, tr); err != nil {
			return fmt.Errorf("export transcript: %w", err)
		}
	}

	return nil
}

// resolveProvider constructs the configured backend, bootstrapping a local
// Ollama server when asked to.
func resolveProvider(ctx context.Context, cfg config.Config) (relay.Provider, error) {
	switch cfg.Backend {
	case "ollama":
		var opts []ollama.Option
		if cfg.Ollama.BaseURL != "" {
			opts = append(opts, ollama.WithBaseURL(cfg.Ollama.BaseURL))
		}
		client := ollama.New(opts...)
		if cfg.Ollama.AutoStart {
			if err := ollama.EnsureServing(ctx, cfg.Ollama.BaseURL); err != nil {
				return nil, fmt.Errorf("start ollama: %w", err)
			}
		}
		return client, nil
	case "gemini":
		apiKey := os.Getenv(cfg.Gemini.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("gemini backend requires %s", cfg.Gemini.APIKeyEnv)
		}
		return gemini.New(ctx, apiKey)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// loadOrCreateSession resumes the named thread from the store, or creates a
// fresh session with a generated id.
func loadOrCreateSession(ctx context.Context, store *sqlite.Store, id string, models []relay.Model) (*relay.Session, error) {
	if id == "" {
		return relay.NewSession(uuid.NewString(), models), nil
	}
	steps, err := store.LoadTranscript(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load thread %s: %w", id, err)
	}
	return relay.ResumeSession(id, models, steps), nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".relay", "config.toml")
}

func storePath(cfg config.Config) string {
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".relay")
	_ = os.MkdirAll(dir, 0o700)
	return filepath.Join(dir, "threads.db")
}
