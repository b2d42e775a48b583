// Package agent orchestrates the conversation loop between a Provider and a
// ToolExecutor.
package agent

import (
	"context"
	"io"
	"time"

	giazero "github.com/torayeff/giazero"
)

// Loop drives the conversation: it streams the model's response, executes
// any tool calls it contains, feeds the results back, and repeats until the
// assistant stops requesting tools.
type Loop struct {
	provider giazero.Provider
	executor giazero.ToolExecutor
}

// New creates a new Loop with the given provider and tool executor.
func New(provider giazero.Provider, executor giazero.ToolExecutor) *Loop {
	return &Loop{provider: provider, executor: executor}
}

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onEvent      func(giazero.Event)
	onToolResult func(giazero.ToolResultMessage)
	model        string
	maxTokens    int
}

// WithEventHandler sets a callback that receives each streaming event
// during the run. If nil or not set, events are silently discarded.
func WithEventHandler(h func(giazero.Event)) RunOption {
	return func(c *runConfig) {
		c.onEvent = h
	}
}

// WithToolResultHandler sets a callback invoked after each tool execution
// with the resulting message, before it is appended to the session.
func WithToolResultHandler(h func(giazero.ToolResultMessage)) RunOption {
	return func(c *runConfig) {
		c.onToolResult = h
	}
}

// WithModel sets the model ID for provider requests during this run.
// Empty string means the provider uses its default model.
func WithModel(model string) RunOption {
	return func(c *runConfig) {
		c.model = model
	}
}

// WithMaxTokens caps the response length per turn. Zero means the
// provider's default.
func WithMaxTokens(n int) RunOption {
	return func(c *runConfig) {
		c.maxTokens = n
	}
}

// Run executes the agent loop until the assistant ends its turn without
// requesting tools, appending all messages to session.Messages. It returns
// the first provider or stream error; tool-level failures never abort the
// loop because they are delivered back to the model as tool results.
func (l *Loop) Run(ctx context.Context, session *giazero.Session, tools []giazero.Tool, opts ...RunOption) error {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	for {
		cont, err := l.turn(ctx, session, tools, &cfg)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// turn executes a single turn of the conversation loop. It returns true if
// the loop should continue (tool calls were made), false if it should stop.
func (l *Loop) turn(ctx context.Context, session *giazero.Session, tools []giazero.Tool, cfg *runConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	req := giazero.Request{
		Model:        cfg.model,
		SystemPrompt: session.SystemPrompt,
		Messages:     session.Messages,
		Tools:        tools,
		MaxTokens:    cfg.maxTokens,
	}

	stream, err := l.provider.Stream(ctx, req)
	if err != nil {
		return false, err
	}
	defer stream.Close()

	// Drain the stream, forwarding events to the handler if set.
	var streamErr error
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			streamErr = err
			break
		}
		if cfg.onEvent != nil {
			cfg.onEvent(evt)
		}
	}

	// Get the assembled message (partial or complete).
	msg, msgErr := stream.Message()
	if msgErr != nil {
		if streamErr != nil {
			return false, streamErr
		}
		return false, msgErr
	}

	session.Messages = append(session.Messages, msg)
	session.UpdatedAt = time.Now()

	if streamErr != nil {
		return false, streamErr
	}

	toolCalls := extractToolCalls(msg)
	if len(toolCalls) == 0 {
		return false, nil
	}

	for _, tc := range toolCalls {
		result, execErr := l.executor.Execute(ctx, tc.Name, tc.Arguments)
		if execErr != nil {
			result = &giazero.ToolResult{
				Content: []giazero.ContentBlock{giazero.TextBlock{Text: "Error: " + execErr.Error()}},
				IsError: true,
			}
		}

		trm := giazero.ToolResultMessage{
			ToolCallID: tc.ID,
			ToolName:   tc.Name,
			Content:    result.Content,
			IsError:    result.IsError,
			Timestamp:  time.Now(),
		}
		if cfg.onToolResult != nil {
			cfg.onToolResult(trm)
		}
		session.Messages = append(session.Messages, trm)
	}
	session.UpdatedAt = time.Now()

	return true, nil
}

func extractToolCalls(msg giazero.AssistantMessage) []giazero.ToolCallBlock {
	var calls []giazero.ToolCallBlock
	for _, block := range msg.Content {
		if tc, ok := block.(giazero.ToolCallBlock); ok {
			calls = append(calls, tc)
		}
	}
	return calls
}
