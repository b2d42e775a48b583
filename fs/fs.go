// Package fs provides the filesystem tools: list_directory, read_text_file,
// read_binary_file, read_image_file, write_file, glob, and grep.
//
// Every tool converts its failures into a text result beginning with
// "Error:" and never returns a Go error for domain conditions. Error texts
// quote the path as the caller supplied it, not the resolved form, so the
// model can correlate them with its own arguments.
package fs

import (
	"path/filepath"

	giazero "github.com/torayeff/giazero"
)

func domainError(msg string) *giazero.ToolResult {
	return &giazero.ToolResult{
		Content: []giazero.ContentBlock{giazero.TextBlock{Text: msg}},
		IsError: true,
	}
}

func textResult(text string) *giazero.ToolResult {
	return &giazero.ToolResult{
		Content: []giazero.ContentBlock{giazero.TextBlock{Text: text}},
		IsError: false,
	}
}

// Resolve normalizes a possibly-relative path into an absolute, cleaned
// path. Relative paths are anchored at the process working directory.
// Symlinks are resolved when the target exists; for nonexistent targets the
// cleaned absolute path is returned as-is. Resolve performs no existence
// check of its own - that is each tool's responsibility.
func Resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
