package giazero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	giazero "github.com/torayeff/giazero"
)

func TestToolSummary(t *testing.T) {
	t.Parallel()

	t.Run("returns first line of multi-line description", func(t *testing.T) {
		t.Parallel()
		tool := giazero.Tool{
			Name:        "list_directory",
			Description: "List all files and directories in the specified directory.\n\nEntries are sorted alphabetically.",
		}
		assert.Equal(t, "List all files and directories in the specified directory.", tool.Summary())
	})

	t.Run("returns whole description when single line", func(t *testing.T) {
		t.Parallel()
		tool := giazero.Tool{Description: "Write text content to a file."}
		assert.Equal(t, "Write text content to a file.", tool.Summary())
	})

	t.Run("empty description", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", giazero.Tool{}.Summary())
	})
}

func TestToolResultText(t *testing.T) {
	t.Parallel()

	t.Run("concatenates text blocks, skipping others", func(t *testing.T) {
		t.Parallel()
		result := &giazero.ToolResult{
			Content: []giazero.ContentBlock{
				giazero.TextBlock{Text: "Image: cat.png"},
				giazero.ImageBlock{Data: []byte{1, 2, 3}, MimeType: "image/png"},
				giazero.TextBlock{Text: " done"},
			},
		}
		assert.Equal(t, "Image: cat.png done", result.Text())
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", (&giazero.ToolResult{}).Text())
	})
}
