package components

import (
	"github.com/clipperhouse/uax29/words"
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/atomic"
)

// TokenCounter defines the interface for counting tokens in a string.
type TokenCounter interface {
	Count(p []byte) int
}

// WordsTokenCounter approximates token counts by unicode word boundaries.
// It is the fallback when a tiktoken encoding is unavailable.
type WordsTokenCounter struct{}

func (c WordsTokenCounter) Count(p []byte) int {
	return len(words.SegmentAll(p))
}

// TikTokenCounter provides accurate token counting using the tiktoken library,
// which implements the tokenization schemes used by OpenAI models.
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTikTokenCounter creates a new TikTokenCounter using the specified
// encoding, e.g. "cl100k_base".
func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return &TikTokenCounter{tke: tke}, nil
}

// NewTokenCounterForModel returns the tiktoken counter matching the model,
// falling back to word counting when the encoding cannot be loaded.
func NewTokenCounterForModel(model string) TokenCounter {
	if tke, err := tiktoken.EncodingForModel(model); err == nil {
		return &TikTokenCounter{tke: tke}
	}
	return WordsTokenCounter{}
}

func (c *TikTokenCounter) Count(p []byte) int {
	return len(c.tke.Encode(string(p), nil, nil))
}

// UsageTracker is the run-wide usage and budget counter shared by every
// agent participating in a plan. A zero limit disables budget enforcement.
// threadsafe
type UsageTracker struct {
	inputTokens  *atomic.Int64
	outputTokens *atomic.Int64
	limit        int64
	counter      TokenCounter
}

// NewUsageTracker returns a tracker enforcing limit total tokens.
func NewUsageTracker(limit int64, counter TokenCounter) *UsageTracker {
	if counter == nil {
		counter = WordsTokenCounter{}
	}
	return &UsageTracker{
		inputTokens:  atomic.NewInt64(0),
		outputTokens: atomic.NewInt64(0),
		limit:        limit,
		counter:      counter,
	}
}

// Charge accumulates the usage of a single model call.
func (t *UsageTracker) Charge(usage *ApiUsage) {
	if usage == nil {
		return
	}
	t.inputTokens.Add(int64(usage.InputTokens))
	t.outputTokens.Add(int64(usage.OutputTokens))
}

// Estimate counts the tokens of a prompt without charging them.
func (t *UsageTracker) Estimate(prompt string) int64 {
	return int64(t.counter.Count([]byte(prompt)))
}

// Exhausted reports whether the accumulated usage has crossed the budget.
func (t *UsageTracker) Exhausted() bool {
	if t.limit <= 0 {
		return false
	}
	return t.inputTokens.Load()+t.outputTokens.Load() >= t.limit
}

// Remaining returns the number of tokens left in the budget, or -1 when
// no budget is enforced.
func (t *UsageTracker) Remaining() int64 {
	if t.limit <= 0 {
		return -1
	}
	rem := t.limit - t.inputTokens.Load() - t.outputTokens.Load()
	if rem < 0 {
		return 0
	}
	return rem
}

// Usage returns a snapshot of the accumulated usage.
func (t *UsageTracker) Usage() ApiUsage {
	return ApiUsage{
		InputTokens:  int(t.inputTokens.Load()),
		OutputTokens: int(t.outputTokens.Load()),
	}
}
