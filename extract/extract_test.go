package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushilparjapat/relay"
	"github.com/sushilparjapat/relay/extract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReader_ReadAll(t *testing.T) {
	t.Parallel()

	t.Run("extracts recognized files in order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		a := writeFile(t, dir, "a.txt", "hello")
		b := writeFile(t, dir, "b.md", "world")

		docs, err := extract.NewReader().ReadAll(context.Background(), []relay.File{
			{Path: a, Name: "a.txt"},
			{Path: b, Name: "b.md"},
		})
		require.NoError(t, err)
		assert.Equal(t, []relay.Document{
			{Name: "a.txt", Text: "hello"},
			{Name: "b.md", Text: "world"},
		}, docs)
	})

	t.Run("unrecognized extension is silently skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		bin := writeFile(t, dir, "blob.bin", "\x00\x01")
		txt := writeFile(t, dir, "note.txt", "kept")

		docs, err := extract.NewReader().ReadAll(context.Background(), []relay.File{
			{Path: bin, Name: "blob.bin"},
			{Path: txt, Name: "note.txt"},
		})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "note.txt", docs[0].Name)
	})

	t.Run("parse failure skips the document, not the turn", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		broken := writeFile(t, dir, "broken.pdf", "not a pdf")
		txt := writeFile(t, dir, "ok.txt", "fine")

		docs, err := extract.NewReader().ReadAll(context.Background(), []relay.File{
			{Path: broken, Name: "broken.pdf"},
			{Path: txt, Name: "ok.txt"},
		})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "ok.txt", docs[0].Name)
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		t.Parallel()
		docs, err := extract.NewReader().ReadAll(context.Background(), []relay.File{
			{Path: "/nonexistent/gone.txt", Name: "gone.txt"},
		})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := extract.NewReader().ReadAll(ctx, []relay.File{
			{Path: "/nonexistent/gone.txt", Name: "gone.txt"},
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCollect(t *testing.T) {
	t.Parallel()

	t.Run("expands recursive patterns", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
		writeFile(t, dir, "a.txt", "x")
		writeFile(t, filepath.Join(dir, "sub"), "b.txt", "y")

		files, err := extract.Collect(dir, "**/*.txt")
		require.NoError(t, err)
		require.Len(t, files, 2)
		names := []string{files[0].Name, files[1].Name}
		assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		t.Parallel()
		files, err := extract.Collect(t.TempDir(), "*.pdf")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("invalid pattern is an error", func(t *testing.T) {
		t.Parallel()
		_, err := extract.Collect(t.TempDir(), "[")
		assert.Error(t, err)
	})
}
