package exec_test

import (
	"context"
	"os"
	osexec "os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torayeff/giazero/exec"
)

func TestExecutePython(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-python extension without executing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "script.txt")
		require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))

		result, err := exec.ExecutePython(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "is not a Python file")
	})

	t.Run("missing file returns error text", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "gone.py")

		result, err := exec.ExecutePython(context.Background(), mustArgs(t, map[string]any{"file_path": missing}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, "Error: File")
		assert.Contains(t, text, missing)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		t.Parallel()
		result, err := exec.ExecutePython(context.Background(), mustArgs(t, map[string]any{"file_path": t.TempDir()}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "is not a file")
	})

	t.Run("runs a script and captures stdout", func(t *testing.T) {
		t.Parallel()
		if _, err := osexec.LookPath("python3"); err != nil {
			t.Skip("python3 not installed")
		}
		dir := t.TempDir()
		path := filepath.Join(dir, "hello.py")
		require.NoError(t, os.WriteFile(path, []byte("print('hello from python')\n"), 0o644))

		result, err := exec.ExecutePython(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		text := resultText(t, result)
		assert.Contains(t, text, "STDOUT:\nhello from python")
		assert.NotContains(t, text, "Return code:")
	})

	t.Run("script failure reports return code", func(t *testing.T) {
		t.Parallel()
		if _, err := osexec.LookPath("python3"); err != nil {
			t.Skip("python3 not installed")
		}
		dir := t.TempDir()
		path := filepath.Join(dir, "fail.py")
		require.NoError(t, os.WriteFile(path, []byte("import sys\nsys.exit(5)\n"), 0o644))

		result, err := exec.ExecutePython(context.Background(), mustArgs(t, map[string]any{"file_path": path}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "Return code: 5")
	})
}
