// Package mock provides test doubles for giazero interfaces using function
// fields.
package mock

import (
	"context"
	"encoding/json"

	giazero "github.com/torayeff/giazero"
)

// Interface compliance checks.
var (
	_ giazero.Provider     = (*Provider)(nil)
	_ giazero.Stream       = (*Stream)(nil)
	_ giazero.ToolExecutor = (*ToolExecutor)(nil)
)

// Provider is a test double for giazero.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req giazero.Request) (giazero.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req giazero.Request) (giazero.Stream, error) {
	return p.StreamFn(ctx, req)
}

// Stream is a test double for giazero.Stream.
// Set the function fields for the methods you need. NextFn and MessageFn
// panic when nil to catch missing setup. CloseFn and StateFn are nil-safe
// (no-op and zero value) because test code commonly calls defer
// stream.Close() and these methods rarely need custom behavior.
type Stream struct {
	NextFn    func() (giazero.Event, error)
	StateFn   func() giazero.StreamState
	MessageFn func() (giazero.AssistantMessage, error)
	CloseFn   func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (giazero.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() giazero.StreamState {
	if s.StateFn == nil {
		return giazero.StreamStateNew
	}
	return s.StateFn()
}

// Message delegates to MessageFn.
func (s *Stream) Message() (giazero.AssistantMessage, error) {
	return s.MessageFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// ToolExecutor is a test double for giazero.ToolExecutor.
// Set ExecuteFn before calling Execute.
type ToolExecutor struct {
	ExecuteFn func(ctx context.Context, name string, args json.RawMessage) (*giazero.ToolResult, error)
}

// Execute delegates to ExecuteFn.
func (e *ToolExecutor) Execute(ctx context.Context, name string, args json.RawMessage) (*giazero.ToolResult, error) {
	return e.ExecuteFn(ctx, name, args)
}
