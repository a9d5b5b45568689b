package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/core"
)

// MockArticleSelector is a test double for ai.ArticleSelector.
// It allows custom behavior injection via function fields.
type MockArticleSelector struct {
	// SelectFunc is called by Select if set.
	// If nil, uses default word-overlap matching against catalog titles.
	SelectFunc func(ctx context.Context, condition string, catalog core.Catalog) ([]core.ArticleID, error)

	mu        sync.Mutex
	callCount int
}

// NewMockArticleSelector creates a mock selector with default behavior.
// Note: returns concrete type to allow test assertions via CallCount().
func NewMockArticleSelector() *MockArticleSelector {
	return &MockArticleSelector{}
}

// Select returns catalog entries whose titles share a word with the
// condition, or delegates to SelectFunc if set.
func (m *MockArticleSelector) Select(ctx context.Context, condition string, catalog core.Catalog) ([]core.ArticleID, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, condition, catalog)
	}

	words := strings.Fields(strings.ToLower(condition))
	var ids []core.ArticleID
	for _, h := range catalog {
		title := strings.ToLower(h.Title)
		for _, w := range words {
			if w != "" && strings.Contains(title, w) {
				ids = append(ids, h.Number)
				break
			}
		}
	}
	return ids, nil
}

// CallCount returns the number of times Select was called.
func (m *MockArticleSelector) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockArticleSelector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SelectFunc = nil
}

var _ ai.ArticleSelector = (*MockArticleSelector)(nil)
