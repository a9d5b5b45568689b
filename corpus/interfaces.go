package corpus

import (
	"context"
	"fmt"

	"github.com/poiesic/refsearch/core"
)

// ArticleStore provides read access to the reference article corpus.
// Implementations must be thread-safe and support concurrent access.
type ArticleStore interface {
	// Catalog returns the full article catalog: every known article number
	// with its title. Returns ErrStoreUnavailable if the underlying listing
	// cannot be read, and ErrDuplicateArticle if the listing contains the
	// same article number twice.
	Catalog(ctx context.Context) (core.Catalog, error)

	// Article returns the full text of one article by number.
	// Returns ErrArticleNotFound if the number is unknown or its backing
	// content is missing. No side effects beyond the read.
	Article(ctx context.Context, id core.ArticleID) (*core.Article, error)

	// Close releases resources held by the store.
	// After Close is called, the store should not be used.
	Close() error
}

// ArticleWriter extends ArticleStore with write access. The filesystem
// store is read-only; the BadgerDB store implements ArticleWriter so the
// seeder can populate it.
type ArticleWriter interface {
	ArticleStore

	// PutArticle upserts one article and its catalog title.
	PutArticle(ctx context.Context, header core.ArticleHeader, article *core.Article) error

	// Digest returns the stored content digest for an article, or 0 if the
	// article is not present. Used by the seeder to skip unchanged bodies.
	Digest(ctx context.Context, id core.ArticleID) (uint64, error)
}

// CheckCatalog verifies a loaded catalog before a store serves it.
// Repeated article numbers are a data-integrity fault reported as
// ErrDuplicateArticle, never deduplicated; any other fault surfaces as
// ErrStoreUnavailable.
func CheckCatalog(c core.Catalog) error {
	seen := make(map[core.ArticleID]bool, len(c))
	for _, h := range c {
		if seen[h.Number] {
			return fmt.Errorf("%w: number %d", ErrDuplicateArticle, h.Number)
		}
		seen[h.Number] = true
	}
	if err := core.ValidateCatalog(c); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
