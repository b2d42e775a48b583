// Package exec provides the process-execution tools: execute_shell and
// execute_python.
//
// Both tools run their subprocess synchronously and capture stdout and
// stderr separately. Output is sanitized and tail-truncated before it is
// handed to the model; when truncation drops data, the full output is
// offloaded to a temp file the model can read back with read_text_file.
//
// execute_shell deliberately runs the literal command string through a real
// shell. Full shell semantics, including injection, are an accepted trust
// boundary of this harness, not a bug.
package exec

import (
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
