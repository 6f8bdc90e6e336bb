package ollama

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"
)

var (
	serveOnce sync.Once
	serveErr  error
)

// EnsureServing makes sure an Ollama server is reachable at baseURL
// (empty = default). If one is already running this is a no-op, not an
// error. Otherwise it spawns `ollama serve` detached and polls until the
// server answers or the context expires. The spawn is guarded by a
// process-wide sync.Once so concurrent sessions cannot double-start the
// server or race on the port.
func EnsureServing(ctx context.Context, baseURL string) error {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if healthy(ctx, baseURL) {
		return nil
	}

	serveOnce.Do(func() {
		cmd := exec.Command("ollama", "serve")
		cmd.Env = append(os.Environ(),
			"OLLAMA_HOST=0.0.0.0:11434",
			"OLLAMA_ORIGINS=*",
		)
		if err := cmd.Start(); err != nil {
			serveErr = fmt.Errorf("ollama: start server: %w", err)
			return
		}
		// Fire and forget: the server outlives the session and is never
		// joined. Release resources when it does exit.
		go func() { _ = cmd.Wait() }()
	})
	if serveErr != nil {
		return serveErr
	}

	// Poll until the server comes up.
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("ollama: waiting for server: %w", ctx.Err())
		case <-ticker.C:
			if healthy(ctx, baseURL) {
				return nil
			}
		}
	}
}

// healthy probes the server root, which answers 200 when serving.
func healthy(ctx context.Context, baseURL string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
