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


package openai

import (
	"github.com/poiesic/refsearch/ai"
)

// Provider implements ai.Provider using OpenAI-compatible chat APIs.
// It manages the lifecycle of the selector and extractor services.
type Provider struct {
	selector  *ArticleSelector
	extractor *QuoteExtractor
}

// NewProvider creates a provider with both services configured from the
// same Config.
//
// Returns ai.Provider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	selector, err := newArticleSelector(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newQuoteExtractor(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		selector:  selector,
		extractor: extractor,
	}, nil
}

// ArticleSelector returns the coarse selection service.
func (p *Provider) ArticleSelector() ai.ArticleSelector {
	return p.selector
}

// QuoteExtractor returns the quote extraction service.
func (p *Provider) QuoteExtractor() ai.QuoteExtractor {
	return p.extractor
}

// Close releases resources held by the provider.
// The underlying HTTP clients hold no persistent connections, so this is
// currently a no-op, but callers should not rely on that.
func (p *Provider) Close() error {
	return nil
}
