package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	giazero "github.com/torayeff/giazero"
)

type writeFileArgs struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// WriteFileTool returns the tool definition for the write_file tool.
func WriteFileTool() giazero.Tool {
	return giazero.Tool{
		Name: "write_file",
		Description: "Write text content to a file, creating it if it doesn't exist.\n\n" +
			"Overwrites existing files. Automatically creates parent directories " +
			"as needed. Content is written with UTF-8 encoding.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"file_path": {
					"type": "string",
					"description": "Destination path for the file (relative or absolute)"
				},
				"content": {
					"type": "string",
					"description": "Text content to write to the file"
				}
			},
			"required": ["file_path", "content"]
		}`),
	}
}

// ExecuteWriteFile writes content to a file, creating missing parent
// directories and overwriting any existing file. This is the only tool with
// a persistent side effect outside the process.
func ExecuteWriteFile(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a writeFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.FilePath == "" {
		return domainError("Error: file_path is required."), nil
	}

	resolved := Resolve(a.FilePath)

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		if os.IsPermission(err) {
			return domainError(fmt.Sprintf("Error: Permission denied to write to '%s'.", a.FilePath)), nil
		}
		return domainError(fmt.Sprintf("Error writing file: %s", err)), nil
	}

	// Preserve the mode of an existing file; default for new ones.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(resolved); err == nil {
		perm = info.Mode().Perm()
	}

	if err := os.WriteFile(resolved, []byte(a.Content), perm); err != nil {
		if os.IsPermission(err) {
			return domainError(fmt.Sprintf("Error: Permission denied to write to '%s'.", a.FilePath)), nil
		}
		return domainError(fmt.Sprintf("Error writing file: %s", err)), nil
	}

	return textResult(fmt.Sprintf("Successfully written to '%s'.", a.FilePath)), nil
}
