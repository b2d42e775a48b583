package gemini

import (
	"context"
	"iter"

	giazero "github.com/torayeff/giazero"
	"google.golang.org/genai"
)

// NewStreamFromIter exposes the stream constructor so tests can feed
// pre-built response chunks without a live API client.
func NewStreamFromIter(ctx context.Context, iterFn iter.Seq2[*genai.GenerateContentResponse, error]) giazero.Stream {
	return newStream(ctx, iterFn)
}
