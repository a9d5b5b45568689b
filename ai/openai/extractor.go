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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/core"
	"github.com/tmc/langchaingo/llms"
)

// QuoteExtractor implements ai.QuoteExtractor using OpenAI-compatible
// chat APIs.
type QuoteExtractor struct {
	client      llms.Model
	maxQuoteLen int
	logger      *slog.Logger
}

// extractionRequest is the user-message payload for the extraction call.
type extractionRequest struct {
	UserMedicalCondition string `json:"user_medical_condition"`
	ArticleText          string `json:"article_text"`
}

// extractionResponse is the JSON shape the model is instructed to return.
// Reasoning is one line shared by all quotes of the article.
type extractionResponse struct {
	Quotes    []string `json:"quotes"`
	Reasoning string   `json:"reasoning"`
}

// newQuoteExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newQuoteExtractor(config *ai.Config) (*QuoteExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config.Host, config.APIKey, config.ExtractorModel)
	if err != nil {
		return nil, err
	}

	return &QuoteExtractor{
		client:      client,
		maxQuoteLen: config.MaxQuoteLen,
		logger:      slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewQuoteExtractor creates a new quote extractor using the provided
// configuration.
//
// Returns ai.QuoteExtractor interface to enforce abstraction.
func NewQuoteExtractor(config *ai.Config) (ai.QuoteExtractor, error) {
	return newQuoteExtractor(config)
}

// Extract asks the model whether the article supports the condition and
// which passages do. An empty result means the model judged the article
// irrelevant or found nothing quotable.
func (e *QuoteExtractor) Extract(ctx context.Context, condition string, article *core.Article) ([]core.Quote, error) {
	payload, err := json.Marshal(extractionRequest{
		UserMedicalCondition: condition,
		ArticleText:          article.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrExtractionFailed, err)
	}

	var result extractionResponse
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		responseText, err := generateJSON(ctx, e.client, extractionPrompt, string(payload))
		if err != nil {
			lastErr = err
			e.logger.Warn("extraction call failed",
				"attempt", attempt+1,
				"article", article.Number,
				"err", err)
			continue
		}

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extraction response",
				"attempt", attempt+1,
				"article", article.Number,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}
	if lastErr != nil {
		e.logger.Error("extraction failed after retries", "article", article.Number, "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrExtractionFailed, lastErr)
	}

	quotes := make([]core.Quote, 0, len(result.Quotes))
	for _, text := range result.Quotes {
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) > e.maxQuoteLen {
			e.logger.Warn("model exceeded quote length limit, dropping quote",
				"article", article.Number,
				"len", utf8.RuneCountInString(text))
			continue
		}
		quotes = append(quotes, core.Quote{Text: text, Rationale: result.Reasoning})
	}

	e.logger.Debug("extracted quotes",
		"article", article.Number,
		"returned", len(result.Quotes),
		"kept", len(quotes))
	return quotes, nil
}
