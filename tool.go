package giazero

import (
	"context"
	"encoding/json"
	"strings"
)

// Tool is the descriptor sent to the LLM for a callable tool. Descriptors
// are built once at startup and never mutated afterwards.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Summary returns the first line of the tool's description, used when
// composing the system prompt's tool listing.
func (t Tool) Summary() string {
	if i := strings.IndexByte(t.Description, '\n'); i >= 0 {
		return t.Description[:i]
	}
	return t.Description
}

// ToolExecutor runs tools. Execute returns error only for harness-level
// failures. Domain failures (missing files, bad arguments, non-zero exits)
// are reported through ToolResult.IsError so the model can read and react
// to them; they never surface as Go errors.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error)
}

// ToolResult is the single, uniform outcome of a tool call. Content is a
// sequence of blocks so multimodal results (e.g. an image read) and plain
// text results share one shape.
type ToolResult struct {
	Content []ContentBlock
	IsError bool
}

// Text returns the concatenated text of all TextBlocks in the result.
func (r *ToolResult) Text() string {
	var b strings.Builder
	for _, block := range r.Content {
		if tb, ok := block.(TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String()
}
