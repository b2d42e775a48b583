package exec

import (
	"context"
	"encoding/json"
	"fmt"

	giazero "github.com/torayeff/giazero"
)

const shellSentinel = "Command executed successfully with no output."

type executeShellArgs struct {
	Cmd     string `json:"cmd"`
	Timeout int    `json:"timeout"` // milliseconds; 0 = unbounded
}

// ExecuteShellTool returns the tool definition for the execute_shell tool.
func ExecuteShellTool() giazero.Tool {
	return giazero.Tool{
		Name: "execute_shell",
		Description: "Execute a shell command.\n\n" +
			"Runs the command in a shell environment. " +
			"Captures and returns both stdout and stderr streams along with the " +
			"return code when non-zero.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"cmd": {
					"type": "string",
					"description": "Shell command string to execute"
				},
				"timeout": {
					"type": "integer",
					"description": "Optional timeout in milliseconds (default: no timeout)"
				}
			},
			"required": ["cmd"]
		}`),
	}
}

// ExecuteShell runs the literal command string through bash and renders the
// captured outcome.
func ExecuteShell(ctx context.Context, args json.RawMessage) (*giazero.ToolResult, error) {
	var a executeShellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("Error: invalid arguments: %s", err)), nil
	}
	if a.Cmd == "" {
		return domainError("Error: cmd is required."), nil
	}

	return runCommand(ctx, a.Timeout, shellSentinel, "Error executing command", "bash", "-c", a.Cmd)
}
