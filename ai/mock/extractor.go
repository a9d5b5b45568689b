package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/core"
)

// MockQuoteExtractor is a test double for ai.QuoteExtractor.
// It allows custom behavior injection via function fields.
type MockQuoteExtractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, uses default behavior: quote the first body line that shares
	// a word with the condition.
	ExtractFunc func(ctx context.Context, condition string, article *core.Article) ([]core.Quote, error)

	mu        sync.Mutex
	callCount int
}

// NewMockQuoteExtractor creates a mock extractor with default behavior.
// Note: returns concrete type to allow test assertions via CallCount().
func NewMockQuoteExtractor() *MockQuoteExtractor {
	return &MockQuoteExtractor{}
}

// Extract returns at most one quote: the first line of the article body
// containing a word of the condition. Delegates to ExtractFunc if set.
func (m *MockQuoteExtractor) Extract(ctx context.Context, condition string, article *core.Article) ([]core.Quote, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, condition, article)
	}

	words := strings.Fields(strings.ToLower(condition))
	for _, line := range strings.Split(article.Body, "\n") {
		lower := strings.ToLower(line)
		for _, w := range words {
			if w != "" && strings.Contains(lower, w) {
				return []core.Quote{{Text: line, Rationale: "mentions " + w}}, nil
			}
		}
	}
	return nil, nil
}

// CallCount returns the number of times Extract was called.
func (m *MockQuoteExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQuoteExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractFunc = nil
}

var _ ai.QuoteExtractor = (*MockQuoteExtractor)(nil)
