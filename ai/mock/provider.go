// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/refsearch/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock selector and extractor instances.
type MockProvider struct {
	selector  *MockArticleSelector
	extractor *MockQuoteExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetMockSelector()/GetMockExtractor() to access concrete
// types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		selector:  NewMockArticleSelector(),
		extractor: NewMockQuoteExtractor(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. This allows full control over the behavior of each service.
func NewMockProviderWithServices(selector *MockArticleSelector, extractor *MockQuoteExtractor) ai.Provider {
	return &MockProvider{
		selector:  selector,
		extractor: extractor,
	}
}

// ArticleSelector returns the mock selector.
func (p *MockProvider) ArticleSelector() ai.ArticleSelector {
	return p.selector
}

// QuoteExtractor returns the mock extractor.
func (p *MockProvider) QuoteExtractor() ai.QuoteExtractor {
	return p.extractor
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockSelector returns the underlying mock selector for test assertions.
func (p *MockProvider) GetMockSelector() *MockArticleSelector {
	return p.selector
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockQuoteExtractor {
	return p.extractor
}
