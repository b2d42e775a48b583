package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	giazero "github.com/torayeff/giazero"
	"github.com/torayeff/giazero/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// mockChunks returns a genai-style streaming iterator from pre-built chunks.
func mockChunks(chunks []*genai.GenerateContentResponse) func(func(*genai.GenerateContentResponse, error) bool) {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func collectStreamEvents(t *testing.T, s giazero.Stream) []giazero.Event {
	t.Helper()
	var events []giazero.Event
	for {
		evt, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, evt)
	}
	return events
}

func textChunk(text string, finish genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: finish,
		}},
	}
}

func TestStream_TextDelta(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello"}}},
			}},
		},
		{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: " world"}}},
				FinishReason: genai.FinishReasonStop,
			}},
			UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
				PromptTokenCount:     10,
				CandidatesTokenCount: 8,
			},
		},
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	events := collectStreamEvents(t, s)

	require.Len(t, events, 2)
	assert.Equal(t, giazero.EventTextDelta{Delta: "Hello"}, events[0])
	assert.Equal(t, giazero.EventTextDelta{Delta: " world"}, events[1])

	msg, err := s.Message()
	require.NoError(t, err)
	assert.Equal(t, giazero.StopEndTurn, msg.StopReason)
	require.Len(t, msg.Content, 1)
	assert.Equal(t, giazero.TextBlock{Text: "Hello world"}, msg.Content[0])
	assert.Equal(t, 10, msg.Usage.InputTokens)
	assert.Equal(t, 8, msg.Usage.OutputTokens)
}

func TestStream_ThinkingDelta(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "reasoning", Thought: true, ThoughtSignature: []byte("sig123")},
				}},
			}},
		},
		textChunk("Answer", genai.FinishReasonStop),
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	events := collectStreamEvents(t, s)

	require.Len(t, events, 2)
	assert.Equal(t, giazero.EventThinkingDelta{Delta: "reasoning"}, events[0])
	assert.Equal(t, giazero.EventTextDelta{Delta: "Answer"}, events[1])

	msg, err := s.Message()
	require.NoError(t, err)
	require.Len(t, msg.Content, 2)
	tb := msg.Content[0].(giazero.ThinkingBlock)
	assert.Equal(t, "reasoning", tb.Thinking)
	assert.Equal(t, []byte("sig123"), tb.Signature)
	assert.Equal(t, giazero.TextBlock{Text: "Answer"}, msg.Content[1])
}

func TestStream_ToolCall(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{
					FunctionCall: &genai.FunctionCall{
						ID:   "fc_1",
						Name: "read_text_file",
						Args: map[string]any{"path": "main.py"},
					},
				}}},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	events := collectStreamEvents(t, s)

	require.Len(t, events, 2)
	begin := events[0].(giazero.EventToolCallBegin)
	assert.Equal(t, "fc_1", begin.ID)
	assert.Equal(t, "read_text_file", begin.Name)
	end := events[1].(giazero.EventToolCallEnd)
	assert.Equal(t, "fc_1", end.Call.ID)
	assert.JSONEq(t, `{"path":"main.py"}`, string(end.Call.Arguments))

	msg, err := s.Message()
	require.NoError(t, err)
	assert.Equal(t, giazero.StopToolUse, msg.StopReason)
	require.Len(t, msg.Content, 1)
	call := msg.Content[0].(giazero.ToolCallBlock)
	assert.Equal(t, "read_text_file", call.Name)
}

func TestStream_ToolCallSynthesizedID(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{FunctionCall: &genai.FunctionCall{Name: "list_directory"}},
					{FunctionCall: &genai.FunctionCall{Name: "execute_shell"}},
				}},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	events := collectStreamEvents(t, s)

	require.Len(t, events, 4)
	first := events[0].(giazero.EventToolCallBegin)
	second := events[2].(giazero.EventToolCallBegin)
	assert.Equal(t, "call_1", first.ID)
	assert.Equal(t, "call_2", second.ID)

	// Nil args become an empty object so arguments stay valid JSON.
	end := events[1].(giazero.EventToolCallEnd)
	assert.Equal(t, json.RawMessage(`{}`), end.Call.Arguments)
}

func TestStream_MixedContent(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "thinking it ", Thought: true},
					{Text: "over", Thought: true},
					{Text: "I'll check the file."},
					{FunctionCall: &genai.FunctionCall{Name: "read_text_file", Args: map[string]any{"path": "x"}}},
				}},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	events := collectStreamEvents(t, s)
	require.Len(t, events, 5)

	msg, err := s.Message()
	require.NoError(t, err)
	assert.Equal(t, giazero.StopToolUse, msg.StopReason)
	require.Len(t, msg.Content, 3)
	assert.Equal(t, "thinking it over", msg.Content[0].(giazero.ThinkingBlock).Thinking)
	assert.Equal(t, giazero.TextBlock{Text: "I'll check the file."}, msg.Content[1])
	assert.Equal(t, "read_text_file", msg.Content[2].(giazero.ToolCallBlock).Name)
}

func TestStream_MaxTokens(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		textChunk("truncated", genai.FinishReasonMaxTokens),
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	collectStreamEvents(t, s)

	msg, err := s.Message()
	require.NoError(t, err)
	assert.Equal(t, giazero.StopLength, msg.StopReason)
	assert.Equal(t, string(genai.FinishReasonMaxTokens), msg.RawStopReason)
}

func TestStream_UsageCachedTokens(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: "ok"}}},
				FinishReason: genai.FinishReasonStop,
			}},
			UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
				PromptTokenCount:        100,
				CachedContentTokenCount: 60,
				CandidatesTokenCount:    5,
				ThoughtsTokenCount:      7,
			},
		},
	}

	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	collectStreamEvents(t, s)

	msg, err := s.Message()
	require.NoError(t, err)
	assert.Equal(t, 40, msg.Usage.InputTokens)
	assert.Equal(t, 12, msg.Usage.OutputTokens)
	assert.Equal(t, 60, msg.Usage.CacheReadTokens)
}

func TestStream_IteratorError(t *testing.T) {
	t.Parallel()
	errIter := func(yield func(*genai.GenerateContentResponse, error) bool) {
		yield(nil, assert.AnError)
	}

	s := gemini.NewStreamFromIter(context.Background(), errIter)
	_, err := s.Next()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gemini:")
	assert.Equal(t, giazero.StreamStateError, s.State())

	msg, _ := s.Message()
	assert.Equal(t, giazero.StopError, msg.StopReason)
}

func TestStream_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emptyIter := func(yield func(*genai.GenerateContentResponse, error) bool) {}

	s := gemini.NewStreamFromIter(ctx, emptyIter)
	_, err := s.Next()
	assert.Error(t, err)

	msg, _ := s.Message()
	assert.Equal(t, giazero.StopAborted, msg.StopReason)
}

func TestStream_State(t *testing.T) {
	t.Parallel()

	t.Run("new before first next", func(t *testing.T) {
		t.Parallel()
		s := gemini.NewStreamFromIter(context.Background(), mockChunks(nil))
		assert.Equal(t, giazero.StreamStateNew, s.State())
	})

	t.Run("streaming after first next", func(t *testing.T) {
		t.Parallel()
		chunks := []*genai.GenerateContentResponse{
			textChunk("Hi", ""),
			textChunk(" there", genai.FinishReasonStop),
		}
		s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
		_, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, giazero.StreamStateStreaming, s.State())
	})

	t.Run("complete after EOF", func(t *testing.T) {
		t.Parallel()
		chunks := []*genai.GenerateContentResponse{
			textChunk("Hi", genai.FinishReasonStop),
		}
		s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
		collectStreamEvents(t, s)
		assert.Equal(t, giazero.StreamStateComplete, s.State())
	})

	t.Run("closed after close mid-stream", func(t *testing.T) {
		t.Parallel()
		chunks := []*genai.GenerateContentResponse{
			textChunk("Hi", ""),
			textChunk(" there", genai.FinishReasonStop),
		}
		s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
		_, err := s.Next()
		require.NoError(t, err)
		require.NoError(t, s.Close())
		assert.Equal(t, giazero.StreamStateClosed, s.State())
	})
}

func TestStream_MessageBeforeNext(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(context.Background(), mockChunks(nil))
	_, err := s.Message()
	assert.ErrorIs(t, err, giazero.ErrStreamNotReady)
}

func TestStream_CloseMidStream(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		textChunk("partial", ""),
		textChunk(" rest", genai.FinishReasonStop),
	}
	s := gemini.NewStreamFromIter(context.Background(), mockChunks(chunks))
	_, err := s.Next()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	msg, err := s.Message()
	require.NoError(t, err)
	assert.Equal(t, giazero.StopAborted, msg.StopReason)
	assert.Equal(t, "aborted", msg.RawStopReason)
	require.Len(t, msg.Content, 1)
	assert.Equal(t, giazero.TextBlock{Text: "partial"}, msg.Content[0])

	_, err = s.Next()
	assert.ErrorIs(t, err, giazero.ErrStreamClosed)
}
