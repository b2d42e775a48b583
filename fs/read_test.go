package fs_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torayeff/giazero/fs"
)

func TestExecuteReadTextFile(t *testing.T) {
	t.Parallel()

	t.Run("returns file contents verbatim", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "main.go")
		content := "package main\n\nfunc main() {}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		result, err := fs.ExecuteReadTextFile(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Equal(t, content, resultText(t, result))
	})

	t.Run("missing file returns error text with path", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "nope.txt")

		result, err := fs.ExecuteReadTextFile(context.Background(), mustArgs(t, map[string]any{"file_path": missing}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, "Error: File")
		assert.Contains(t, text, missing)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		result, err := fs.ExecuteReadTextFile(context.Background(), mustArgs(t, map[string]any{"file_path": dir}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "is not a file")
	})

	t.Run("non-UTF-8 content directs to binary reader", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "blob.bin")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

		result, err := fs.ExecuteReadTextFile(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, "is not a valid text file")
		assert.Contains(t, text, "read_binary_file")
	})
}

func TestExecuteReadBinaryFile(t *testing.T) {
	t.Parallel()

	t.Run("round-trips arbitrary bytes through base64", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "data.bin")
		content := []byte{0x00, 0x01, 0xff, 0xfe, 0x7f, 0x80, 0x0a}
		require.NoError(t, os.WriteFile(path, content, 0o644))

		result, err := fs.ExecuteReadBinaryFile(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		decoded, err := base64.StdEncoding.DecodeString(resultText(t, result))
		require.NoError(t, err)
		assert.Equal(t, content, decoded)
	})

	t.Run("missing file returns error text", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "nope.bin")

		result, err := fs.ExecuteReadBinaryFile(context.Background(), mustArgs(t, map[string]any{"file_path": missing}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), missing)
	})
}
