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

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/core"
	"github.com/tmc/langchaingo/llms"
)

// ArticleSelector implements ai.ArticleSelector using OpenAI-compatible
// chat APIs.
type ArticleSelector struct {
	client llms.Model
	logger *slog.Logger
}

// selectionHeader is the catalog entry shape sent to the model.
type selectionHeader struct {
	Number int    `json:"number"`
	Header string `json:"header"`
}

// selectionRequest is the user-message payload for the selection call.
type selectionRequest struct {
	UserMedicalCondition string            `json:"user_medical_condition"`
	ArticlesHeaders      []selectionHeader `json:"articles_headers"`
}

// selectionResponse is the JSON shape the model is instructed to return.
type selectionResponse struct {
	ArticlesNumbers []int `json:"articles_numbers"`
}

// newArticleSelector is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newArticleSelector(config *ai.Config) (*ArticleSelector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config.Host, config.APIKey, config.SelectorModel)
	if err != nil {
		return nil, err
	}

	return &ArticleSelector{
		client: client,
		logger: slog.Default().With("component", "openai-selector"),
	}, nil
}

// NewArticleSelector creates a new article selector using the provided
// configuration.
//
// Returns ai.ArticleSelector interface to enforce abstraction.
func NewArticleSelector(config *ai.Config) (ai.ArticleSelector, error) {
	return newArticleSelector(config)
}

// Select asks the model which catalog entries could correspond to the
// condition. The whole catalog goes into a single call.
func (s *ArticleSelector) Select(ctx context.Context, condition string, catalog core.Catalog) ([]core.ArticleID, error) {
	if catalog.Len() == 0 {
		return nil, nil
	}

	request := selectionRequest{
		UserMedicalCondition: condition,
		ArticlesHeaders:      make([]selectionHeader, 0, catalog.Len()),
	}
	for _, h := range catalog {
		request.ArticlesHeaders = append(request.ArticlesHeaders, selectionHeader{
			Number: int(h.Number),
			Header: h.Title,
		})
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrSelectionFailed, err)
	}

	var result selectionResponse
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		responseText, err := generateJSON(ctx, s.client, selectionPrompt, string(payload))
		if err != nil {
			lastErr = err
			s.logger.Warn("selection call failed", "attempt", attempt+1, "err", err)
			continue
		}

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing selection response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}
	if lastErr != nil {
		s.logger.Error("selection failed after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrSelectionFailed, lastErr)
	}

	ids := make([]core.ArticleID, 0, len(result.ArticlesNumbers))
	for _, n := range result.ArticlesNumbers {
		ids = append(ids, core.ArticleID(n))
	}

	s.logger.Debug("model selected candidates", "count", len(ids))
	return ids, nil
}
