package exec

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	giazero "github.com/torayeff/giazero"
	"github.com/torayeff/giazero/fs"
)

const pythonSentinel = "Python script executed successfully with no output."

type executePythonArgs struct {
	FilePath string `json:"file_path"`
	Timeout  int    `json:"timeout"` // milliseconds; 0 = unbounded
}

// ExecutePythonTool returns the tool definition for the execute_python tool.
func ExecutePythonTool() giazero.Tool {
	return giazero.Tool{
		Name: "execute_python",
		Description: "Execute a Python script.\n\n" +
			"Runs the specified .py file using the Python interpreter. " +
			"Captures and returns both stdout and stderr streams along with the " +
			"return code when non-zero.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"file_path": {
					"type": "string",
					"description": "Path to the Python script (relative or absolute)"
				},
				"timeout": {
					"type": "integer",
					"description": "Optional timeout in milliseconds (default: no timeout)"
				}
			},
			"required": ["file_path"]
		}`),
	}
}

// ExecutePython verifies the path names an existing .py file, then runs it
// with the python3 interpreter and renders the captured outcome.
func ExecutePython(ctx context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a executePythonArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.FilePath == "" {
		return domainError("Error: file_path is required."), nil
	}

	resolved := fs.Resolve(a.FilePath)

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return domainError(fmt.Sprintf("Error: File '%s' does not exist.", a.FilePath)), nil
	}
	if err != nil {
		return domainError(fmt.Sprintf("Error executing Python file: %s", err)), nil
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		return domainError(fmt.Sprintf("Error: '%s' is not a file.", a.FilePath)), nil
	}
	if filepath.Ext(resolved) != ".py" {
		return domainError(fmt.Sprintf("Error: '%s' is not a Python file.", a.FilePath)), nil
	}

	return runCommand(ctx, a.Timeout, pythonSentinel, "Error executing Python file", "python3", resolved)
}
