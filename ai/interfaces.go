package ai

import (
	"context"

	"github.com/poiesic/refsearch/core"
)

// ArticleSelector performs the coarse, title-level relevance pass.
// Implementations must be thread-safe for concurrent use.
type ArticleSelector interface {
	// Select presents the condition and the whole catalog to the model in
	// one call and returns the article numbers the model judged potentially
	// relevant, in the model's relevance order. An empty catalog yields an
	// empty result without calling the model. The returned numbers are not
	// guaranteed to exist in the catalog; callers must filter them.
	// Returns an error wrapping ErrSelectionFailed if the model call errors
	// or its response cannot be parsed after one retry.
	Select(ctx context.Context, condition string, catalog core.Catalog) ([]core.ArticleID, error)
}

// QuoteExtractor performs the fine, full-text relevance pass for one article.
// Implementations must be thread-safe for concurrent use.
type QuoteExtractor interface {
	// Extract sends the condition plus the full article body to the model
	// in one call. The model decides whether the article is relevant and,
	// if so, returns the passages supporting that relevance plus a one-line
	// rationale. An empty slice means either "not relevant" or "no quotable
	// support"; the two are not distinguished.
	// Returns an error wrapping ErrExtractionFailed if the model call errors
	// or its response cannot be parsed after one retry.
	Extract(ctx context.Context, condition string, article *core.Article) ([]core.Quote, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. Both services share configuration and resources.
type Provider interface {
	// ArticleSelector returns the coarse selection service.
	// The returned ArticleSelector is safe for concurrent use.
	ArticleSelector() ArticleSelector

	// QuoteExtractor returns the quote extraction service.
	// The returned QuoteExtractor is safe for concurrent use.
	QuoteExtractor() QuoteExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
