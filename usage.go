package giazero

// Usage tracks token consumption for a single assistant message.
//
// Invariant:
//
//	InputTokens     = non-cached input tokens
//	CacheReadTokens = tokens served from cache (cache hit)
//
// Total input tokens = InputTokens + CacheReadTokens. The provider
// normalizes its API-specific fields to this invariant and clamps derived
// values to zero to guard against inconsistent upstream data.
type Usage struct {
	InputTokens     int
	OutputTokens    int
	CacheReadTokens int
}
