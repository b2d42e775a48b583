package main

import (
	"context"
	"encoding/json"
	"fmt"

	giazero "github.com/torayeff/giazero"
	gzexec "github.com/torayeff/giazero/exec"
	"github.com/torayeff/giazero/fs"
)

// Compile-time interface check.
var _ giazero.ToolExecutor = (*executor)(nil)

// executor dispatches tool calls to the built-in tool implementations.
type executor struct{}

// Execute dispatches a tool call by name. Unknown tool names and panicking
// tools both return an IsError result so the model can self-correct instead
// of the run aborting.
func (e *executor) Execute(ctx context.Context, name string, args json.RawMessage) (result *giazero.ToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = &giazero.ToolResult{
				Content: []giazero.ContentBlock{giazero.TextBlock{
					Text: fmt.Sprintf("Error: tool %s panicked: %v", name, r),
				}},
				IsError: true,
			}
			err = nil
		}
	}()

	switch name {
	case "list_directory":
		return fs.ExecuteListDirectory(ctx, args)
	case "read_text_file":
		return fs.ExecuteReadTextFile(ctx, args)
	case "read_binary_file":
		return fs.ExecuteReadBinaryFile(ctx, args)
	case "read_image_file":
		return fs.ExecuteReadImageFile(ctx, args)
	case "write_file":
		return fs.ExecuteWriteFile(ctx, args)
	case "glob":
		return fs.ExecuteGlob(ctx, args)
	case "grep":
		return fs.ExecuteGrep(ctx, args)
	case "execute_shell":
		return gzexec.ExecuteShell(ctx, args)
	case "execute_python":
		return gzexec.ExecutePython(ctx, args)
	default:
		return &giazero.ToolResult{
			Content: []giazero.ContentBlock{giazero.TextBlock{Text: fmt.Sprintf("unknown tool: %s", name)}},
			IsError: true,
		}, nil
	}
}

// tools returns the tool definitions in registration order, which is also
// the order they appear in the system prompt.
func tools() []giazero.Tool {
	return []giazero.Tool{
		fs.ListDirectoryTool(),
		fs.ReadTextFileTool(),
		fs.ReadBinaryFileTool(),
		fs.ReadImageFileTool(),
		fs.WriteFileTool(),
		fs.GlobTool(),
		fs.GrepTool(),
		gzexec.ExecuteShellTool(),
		gzexec.ExecutePythonTool(),
	}
}
