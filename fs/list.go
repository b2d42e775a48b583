package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	giazero "github.com/torayeff/giazero"
)

type listDirectoryArgs struct {
	DirPath string `json:"dir_path"`
}

// ListDirectoryTool returns the tool definition for the list_directory tool.
func ListDirectoryTool() giazero.Tool {
	return giazero.Tool{
		Name: "list_directory",
		Description: "List all files and directories in the specified directory.\n\n" +
			"Returns a newline-separated list of entries. Directories are marked with " +
			"a trailing slash (e.g., \"subdir/\"). Entries are sorted alphabetically.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"dir_path": {
					"type": "string",
					"description": "Path to the directory to list (relative or absolute)"
				}
			},
			"required": ["dir_path"]
		}`),
	}
}

// ExecuteListDirectory lists the immediate children of a directory.
// An empty directory yields the sentinel "Directory is empty." so the model
// can tell an empty listing apart from a failed one.
func ExecuteListDirectory(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a listDirectoryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.DirPath == "" {
		return domainError("Error: dir_path is required."), nil
	}

	resolved := Resolve(a.DirPath)

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return domainError(fmt.Sprintf("Error: Directory '%s' does not exist.", a.DirPath)), nil
	}
	if os.IsPermission(err) {
		return domainError(fmt.Sprintf("Error: Permission denied to access '%s'.", a.DirPath)), nil
	}
	if err != nil {
		return domainError(fmt.Sprintf("Error listing directory: %s", err)), nil
	}
	if !info.IsDir() {
		return domainError(fmt.Sprintf("Error: '%s' is not a directory.", a.DirPath)), nil
	}

	entries, err := os.ReadDir(resolved)
	if os.IsPermission(err) {
		return domainError(fmt.Sprintf("Error: Permission denied to access '%s'.", a.DirPath)), nil
	}
	if err != nil {
		return domainError(fmt.Sprintf("Error listing directory: %s", err)), nil
	}

	if len(entries) == 0 {
		return textResult("Directory is empty."), nil
	}

	// os.ReadDir returns entries sorted by name.
	names := make([]string, len(entries))
	for i, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names[i] = name
	}

	return textResult(strings.Join(names, "\n")), nil
}
