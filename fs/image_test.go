package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	giazero "github.com/torayeff/giazero"
	"github.com/torayeff/giazero/fs"
)

// pngHeader is the 8-byte PNG signature; enough for extension-based tests.
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func TestExecuteReadImageFile(t *testing.T) {
	t.Parallel()

	t.Run("returns text and image blocks for a png", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "shot.png")
		require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

		result, err := fs.ExecuteReadImageFile(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		require.Len(t, result.Content, 2)

		tb, ok := result.Content[0].(giazero.TextBlock)
		require.True(t, ok)
		assert.Equal(t, "Image: shot.png", tb.Text)

		ib, ok := result.Content[1].(giazero.ImageBlock)
		require.True(t, ok)
		assert.Equal(t, "image/png", ib.MimeType)
		assert.Equal(t, pngHeader, ib.Data)
	})

	t.Run("maps jpg, gif, and webp extensions", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		for ext, want := range map[string]string{
			".jpg":  "image/jpeg",
			".jpeg": "image/jpeg",
			".gif":  "image/gif",
			".webp": "image/webp",
		} {
			path := filepath.Join(dir, "img"+ext)
			require.NoError(t, os.WriteFile(path, []byte{0x01}, 0o644))

			result, err := fs.ExecuteReadImageFile(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
			require.NoError(t, err)
			require.False(t, result.IsError, "extension %s", ext)
			require.Len(t, result.Content, 2)
			ib, ok := result.Content[1].(giazero.ImageBlock)
			require.True(t, ok)
			assert.Equal(t, want, ib.MimeType, "extension %s", ext)
		}
	})

	t.Run("non-image extension returns single error block", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

		result, err := fs.ExecuteReadImageFile(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.Contains(t, resultText(t, result), "does not appear to be an image file")
	})

	t.Run("missing file returns single error block", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "gone.png")

		result, err := fs.ExecuteReadImageFile(context.Background(), mustArgs(t, map[string]any{"file_path": missing}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		text := resultText(t, result)
		assert.Contains(t, text, "Error: File")
		assert.Contains(t, text, missing)
	})
}
