package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	giazero "github.com/torayeff/giazero"
)

type readTextFileArgs struct {
	FilePath string `json:"file_path"`
}

// ReadTextFileTool returns the tool definition for the read_text_file tool.
func ReadTextFileTool() giazero.Tool {
	return giazero.Tool{
		Name: "read_text_file",
		Description: "Read and return the contents of a UTF-8 encoded text file.\n\n" +
			"Suitable for source code, configuration files, markdown, JSON, and other " +
			"text-based formats. Returns an error for binary or non-UTF-8 files.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"file_path": {
					"type": "string",
					"description": "Path to the text file (relative or absolute)"
				}
			},
			"required": ["file_path"]
		}`),
	}
}

// ExecuteReadTextFile reads a file as UTF-8 text and returns its contents
// verbatim, with no wrapping.
func ExecuteReadTextFile(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a readTextFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.FilePath == "" {
		return domainError("Error: file_path is required."), nil
	}

	resolved, result := statFile(a.FilePath)
	if result != nil {
		return result, nil
	}

	data, err := os.ReadFile(resolved)
	if os.IsPermission(err) {
		return domainError(fmt.Sprintf("Error: Permission denied to read '%s'.", a.FilePath)), nil
	}
	if err != nil {
		return domainError(fmt.Sprintf("Error reading file: %s", err)), nil
	}

	if !utf8.Valid(data) {
		return domainError(fmt.Sprintf("Error: '%s' is not a valid text file. Use read_binary_file instead.", a.FilePath)), nil
	}

	return textResult(string(data)), nil
}

// statFile resolves path and verifies it names an existing regular file.
// It returns the resolved path and, on failure, the error result to hand
// back to the model.
func statFile(path string) (string, *giazero.ToolResult) {
	resolved := Resolve(path)

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return "", domainError(fmt.Sprintf("Error: File '%s' does not exist.", path))
	}
	if os.IsPermission(err) {
		return "", domainError(fmt.Sprintf("Error: Permission denied to read '%s'.", path))
	}
	if err != nil {
		return "", domainError(fmt.Sprintf("Error reading file: %s", err))
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		return "", domainError(fmt.Sprintf("Error: '%s' is not a file.", path))
	}
	return resolved, nil
}
