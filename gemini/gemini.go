// Package gemini implements [giazero.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between giazero's
// domain types and the Gemini API types. Streaming uses the SDK's iter.Seq2
// iterator, wrapped into the pull-based [giazero.Stream] interface. Gemini
// delivers function calls whole rather than as argument deltas, so each
// call surfaces as an EventToolCallBegin immediately followed by an
// EventToolCallEnd.
package gemini

const (
	defaultModel     = "gemini-3-pro-preview"
	defaultMaxTokens = 65536
)
