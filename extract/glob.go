package extract

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sushilparjapat/relay"
)

// Collect expands a glob pattern (supporting ** for recursive matching)
// relative to dir into attachment Files, named by their base name. A
// pattern that matches nothing yields an empty slice, not an error.
func Collect(dir, pattern string) ([]relay.File, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	fsys := os.DirFS(dir)
	var files []relay.File
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		full := filepath.Join(dir, filepath.FromSlash(path))
		files = append(files, relay.File{Path: full, Name: filepath.Base(path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	return files, nil
}
