package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"time"

	giazero "github.com/torayeff/giazero"
	"google.golang.org/genai"
)

// stream implements [giazero.Stream] by wrapping the genai SDK's streaming
// iterator. Each pulled chunk is decomposed into semantic events, which are
// queued and handed out one per Next() call; the same parts feed the
// message assembler so Message() reflects everything seen so far.
type stream struct {
	ctx     context.Context
	pull    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	state   giazero.StreamState
	pending []giazero.Event
	asm     assembler
	msg     giazero.AssistantMessage
	err     error
	callSeq int
}

// Interface compliance check.
var _ giazero.Stream = (*stream)(nil)

func newStream(ctx context.Context, iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{
		ctx:   ctx,
		pull:  next,
		stop:  stop,
		state: giazero.StreamStateNew,
	}
}

func (s *stream) Next() (giazero.Event, error) {
	switch s.state {
	case giazero.StreamStateComplete:
		return nil, io.EOF
	case giazero.StreamStateError:
		return nil, s.err
	case giazero.StreamStateClosed:
		return nil, giazero.ErrStreamClosed
	}
	s.state = giazero.StreamStateStreaming

	for {
		if len(s.pending) > 0 {
			evt := s.pending[0]
			s.pending = s.pending[1:]
			return evt, nil
		}

		if err := s.ctx.Err(); err != nil {
			s.state = giazero.StreamStateError
			s.err = fmt.Errorf("gemini: %w", err)
			s.msg = s.asm.finalizeWith(giazero.StopAborted, time.Now())
			return nil, s.err
		}

		resp, err, ok := s.pull()
		if !ok {
			s.state = giazero.StreamStateComplete
			s.msg = s.asm.finalize(time.Now())
			return nil, io.EOF
		}
		if err != nil {
			s.state = giazero.StreamStateError
			s.err = fmt.Errorf("gemini: %w", err)
			stop := giazero.StopError
			if s.ctx.Err() != nil {
				stop = giazero.StopAborted
			}
			s.msg = s.asm.finalizeWith(stop, time.Now())
			return nil, s.err
		}

		s.ingest(resp)
	}
}

// ingest decomposes one response chunk into events and feeds the assembler.
func (s *stream) ingest(resp *genai.GenerateContentResponse) {
	if resp.UsageMetadata != nil {
		s.asm.setUsage(resp.UsageMetadata)
	}

	if len(resp.Candidates) == 0 {
		return
	}
	cand := resp.Candidates[0]
	if cand.FinishReason != "" {
		s.asm.rawFinish = string(cand.FinishReason)
	}
	if cand.Content == nil {
		return
	}

	for _, part := range cand.Content.Parts {
		switch {
		case part.FunctionCall != nil:
			call := s.toolCall(part.FunctionCall)
			s.asm.addCall(call)
			s.pending = append(s.pending,
				giazero.EventToolCallBegin{ID: call.ID, Name: call.Name},
				giazero.EventToolCallEnd{Call: call},
			)
		case part.Text != "" && part.Thought:
			s.asm.addThinking(part.Text, part.ThoughtSignature)
			s.pending = append(s.pending, giazero.EventThinkingDelta{Delta: part.Text})
		case part.Text != "":
			s.asm.addText(part.Text)
			s.pending = append(s.pending, giazero.EventTextDelta{Delta: part.Text})
		}
	}
}

// toolCall converts a FunctionCall part, synthesizing an ID when the API
// omits one so tool results can always be correlated.
func (s *stream) toolCall(fc *genai.FunctionCall) giazero.ToolCallBlock {
	id := fc.ID
	if id == "" {
		s.callSeq++
		id = fmt.Sprintf("call_%d", s.callSeq)
	}
	args, err := json.Marshal(fc.Args)
	if err != nil || fc.Args == nil {
		args = json.RawMessage(`{}`)
	}
	return giazero.ToolCallBlock{ID: id, Name: fc.Name, Arguments: args}
}

func (s *stream) State() giazero.StreamState {
	return s.state
}

func (s *stream) Message() (giazero.AssistantMessage, error) {
	switch s.state {
	case giazero.StreamStateNew:
		return giazero.AssistantMessage{}, giazero.ErrStreamNotReady
	case giazero.StreamStateStreaming:
		return s.asm.finalize(time.Now()), nil
	default:
		return s.msg, nil
	}
}

func (s *stream) Close() error {
	if s.state != giazero.StreamStateComplete && s.state != giazero.StreamStateError {
		if s.state != giazero.StreamStateClosed {
			s.msg = s.asm.finalizeWith(giazero.StopAborted, time.Now())
			s.msg.RawStopReason = "aborted"
		}
		s.state = giazero.StreamStateClosed
	}
	s.stop()
	return nil
}

// assembler accumulates streamed parts into ordered content blocks.
// Consecutive text parts coalesce into a single TextBlock, and likewise for
// thinking parts; tool calls are kept whole in arrival order.
type assembler struct {
	blocks    []giazero.ContentBlock
	usage     giazero.Usage
	rawFinish string
	hasCall   bool
}

func (a *assembler) addText(delta string) {
	if n := len(a.blocks); n > 0 {
		if tb, ok := a.blocks[n-1].(giazero.TextBlock); ok {
			tb.Text += delta
			a.blocks[n-1] = tb
			return
		}
	}
	a.blocks = append(a.blocks, giazero.TextBlock{Text: delta})
}

func (a *assembler) addThinking(delta string, signature []byte) {
	if n := len(a.blocks); n > 0 {
		if tb, ok := a.blocks[n-1].(giazero.ThinkingBlock); ok {
			tb.Thinking += delta
			if signature != nil {
				tb.Signature = signature
			}
			a.blocks[n-1] = tb
			return
		}
	}
	a.blocks = append(a.blocks, giazero.ThinkingBlock{Thinking: delta, Signature: signature})
}

func (a *assembler) addCall(call giazero.ToolCallBlock) {
	a.hasCall = true
	a.blocks = append(a.blocks, call)
}

func (a *assembler) setUsage(u *genai.GenerateContentResponseUsageMetadata) {
	cached := int(u.CachedContentTokenCount)
	input := int(u.PromptTokenCount) - cached
	if input < 0 {
		input = 0
	}
	a.usage = giazero.Usage{
		InputTokens:     input,
		OutputTokens:    int(u.CandidatesTokenCount) + int(u.ThoughtsTokenCount),
		CacheReadTokens: cached,
	}
}

// finalize derives the stop reason from the raw finish reason and whether
// any tool calls were seen.
func (a *assembler) finalize(at time.Time) giazero.AssistantMessage {
	stop := giazero.StopUnknown
	switch genai.FinishReason(a.rawFinish) {
	case genai.FinishReasonStop:
		stop = giazero.StopEndTurn
		if a.hasCall {
			stop = giazero.StopToolUse
		}
	case genai.FinishReasonMaxTokens:
		stop = giazero.StopLength
	}
	return a.finalizeWith(stop, at)
}

func (a *assembler) finalizeWith(stop giazero.StopReason, at time.Time) giazero.AssistantMessage {
	return giazero.AssistantMessage{
		Content:       a.blocks,
		StopReason:    stop,
		RawStopReason: a.rawFinish,
		Usage:         a.usage,
		Timestamp:     at,
	}
}
