// Package usage holds token accounting types for LLM completion calls.
package usage

import "sync"

// Usage holds the token counters a backend reported for a single call.
// Fields are pointers so a counter the backend omitted stays absent
// instead of being coerced to zero.
type Usage struct {
	InputTokens  *int
	OutputTokens *int
	TotalTokens  *int
}

// TokenCount flattens a Usage into plain counters, treating absent
// fields as zero.
func (u Usage) TokenCount() TokenCount {
	return TokenCount{
		InputTokens:  deref(u.InputTokens),
		OutputTokens: deref(u.OutputTokens),
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Ptr returns a pointer to n, for building Usage literals.
func Ptr(n int) *int { return &n }

// ProviderUsage pairs a Usage with the model name that actually served
// the call, taken from the response body when present and falling back
// to the requested model otherwise. Model is never empty.
type ProviderUsage struct {
	Model string
	Usage Usage
}

// New creates a ProviderUsage.
func New(model string, u Usage) ProviderUsage {
	return ProviderUsage{Model: model, Usage: u}
}

// TokenCount holds input and output token counts for a single LLM call.
type TokenCount struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the sum of input and output tokens.
func (tc TokenCount) Total() int {
	return tc.InputTokens + tc.OutputTokens
}

// Tracker accumulates token usage across multiple LLM calls.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	entries []TokenCount
}

// Add records a token count entry.
func (t *Tracker) Add(tc TokenCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, tc)
}

// Last returns the most recent token count entry.
// The bool is false when the tracker has no entries.
func (t *Tracker) Last() (TokenCount, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) == 0 {
		return TokenCount{}, false
	}

	return t.entries[len(t.entries)-1], true
}

// Total returns the aggregate token count across all entries.
func (t *Tracker) Total() TokenCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total TokenCount
	for _, e := range t.entries {
		total.InputTokens += e.InputTokens
		total.OutputTokens += e.OutputTokens
	}

	return total
}

// Count returns the number of recorded entries.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Reset clears all recorded entries.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = nil
}
