package fs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	giazero "github.com/torayeff/giazero"
)

type readBinaryFileArgs struct {
	FilePath string `json:"file_path"`
}

// ReadBinaryFileTool returns the tool definition for the read_binary_file tool.
func ReadBinaryFileTool() giazero.Tool {
	return giazero.Tool{
		Name: "read_binary_file",
		Description: "Read a binary file and return its contents as a base64-encoded string.\n\n" +
			"Handles any file type including executables, archives, and data files. " +
			"The output can be decoded using standard base64 decoding.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"file_path": {
					"type": "string",
					"description": "Path to the binary file (relative or absolute)"
				}
			},
			"required": ["file_path"]
		}`),
	}
}

// ExecuteReadBinaryFile reads all bytes from a file and returns them as
// standard base64 text. No size limit is enforced here; keeping large
// payloads out of the model context is the caller's concern.
func ExecuteReadBinaryFile(_ context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a readBinaryFileArgs
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
		return domainError(fmt.Sprintf("Error reading binary file: %s", err)), nil
	}

	return textResult(base64.StdEncoding.EncodeToString(data)), nil
}
