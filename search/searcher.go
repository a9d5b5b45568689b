package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
)

const (
	defaultMaxInFlight = 4
	defaultCallTimeout = 90 * time.Second
)

// Searcher drives the two-stage retrieval pipeline: a coarse title-level
// selection over the whole catalog, then full-text quote extraction for
// each candidate. Extraction calls fan out over a bounded worker pool;
// results always come back in catalog order.
type Searcher struct {
	store       corpus.ArticleStore
	selector    ai.ArticleSelector
	extractor   ai.QuoteExtractor
	pool        *ants.Pool
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithMaxInFlight bounds the number of concurrent extraction calls.
// Default is 4, minimum 1.
func WithMaxInFlight(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			n = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithCallTimeout sets the per-model-call timeout. Expiry is treated like
// any other failed call for the affected stage.
// Default is 90s.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Searcher) error {
		if d > 0 {
			s.callTimeout = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given store and AI provider.
func NewSearcher(store corpus.ArticleStore, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	pool, err := ants.NewPool(defaultMaxInFlight)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		store:       store,
		selector:    provider.ArticleSelector(),
		extractor:   provider.QuoteExtractor(),
		pool:        pool,
		callTimeout: defaultCallTimeout,
		logger:      slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// Release frees the worker pool. The searcher must not be used afterwards.
func (s *Searcher) Release() {
	s.pool.Release()
}

// Search runs the full pipeline for one condition.
// Returns results in catalog order of the selected candidates.
func (s *Searcher) Search(ctx context.Context, condition string) ([]core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, condition, nil)
}

// SearchWithMonitor runs the full pipeline with monitoring. The monitor
// receives callbacks at each stage of the search process.
//
// Only a catalog load failure is fatal. A failed or empty stage-one
// selection yields an empty result list and a nil error; per-candidate
// failures in stage two degrade to "this article contributes nothing".
func (s *Searcher) SearchWithMonitor(ctx context.Context, condition string, monitor SearchMonitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(condition)

	// 1. Catalog load; a broken or inconsistent catalog aborts the request.
	catalog, err := s.store.Catalog(ctx)
	if err != nil {
		s.logger.Error("catalog load failed", "err", err)
		return nil, err
	}
	if catalog.Len() == 0 {
		monitor.Finish(nil)
		return []core.SearchResult{}, nil
	}

	// 2. Stage one: coarse selection over all headers in one model call.
	// A failure here means "nothing found" for the user, not an error.
	selected, err := s.selectCandidates(ctx, condition, catalog)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		monitor.SelectionFailed(err)
		monitor.Finish(nil)
		return []core.SearchResult{}, nil
	}

	// Keep only numbers that exist in the catalog, deduplicated and in
	// catalog order. Unknown numbers are model hallucinations; their text
	// is never loaded.
	picked := make(map[core.ArticleID]bool, len(selected))
	for _, id := range selected {
		if !catalog.Has(id) {
			monitor.CandidateDropped(id)
			continue
		}
		picked[id] = true
	}
	candidates := make([]core.ArticleHeader, 0, len(picked))
	for _, h := range catalog {
		if picked[h.Number] {
			candidates = append(candidates, h)
		}
	}
	ids := make([]core.ArticleID, len(candidates))
	for i, h := range candidates {
		ids[i] = h.Number
	}
	monitor.AfterSelection(ids)

	if len(candidates) == 0 {
		monitor.Finish(nil)
		return []core.SearchResult{}, nil
	}

	// 3. Stage two: fan extraction out over the pool. Each task owns its
	// slot in the slice, so there is no shared mutable state; slot order
	// is candidate order, which keeps the final result in catalog order
	// no matter when tasks complete.
	slots := make([]*core.SearchResult, len(candidates))
	var wg sync.WaitGroup
	for i, header := range candidates {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			slots[i] = s.processCandidate(ctx, condition, header, monitor)
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool released mid-flight; run the task inline.
			task()
		}
	}
	wg.Wait()

	// Partial results are not delivered on cancellation.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	results := make([]core.SearchResult, 0, len(candidates))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	monitor.Finish(results)
	return results, nil
}

// selectCandidates runs stage one under the per-call timeout.
func (s *Searcher) selectCandidates(ctx context.Context, condition string, catalog core.Catalog) ([]core.ArticleID, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.selector.Select(callCtx, condition, catalog)
}

// processCandidate loads one article and extracts quotes from it. Any
// failure, including a missing article or an expired call timeout, makes
// the candidate contribute nothing; it never aborts the other candidates.
func (s *Searcher) processCandidate(ctx context.Context, condition string, header core.ArticleHeader, monitor SearchMonitor) *core.SearchResult {
	article, err := s.store.Article(ctx, header.Number)
	if err != nil {
		if !errors.Is(err, corpus.ErrArticleNotFound) {
			s.logger.Error("article load failed", "number", header.Number, "err", err)
		}
		monitor.CandidateFailed(header.Number, err)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	quotes, err := s.extractor.Extract(callCtx, condition, article)
	if err != nil {
		monitor.CandidateFailed(header.Number, err)
		return nil
	}

	// The model is told to quote verbatim; trust but verify. Paraphrased
	// quotes are dropped rather than shown as citations.
	kept := make([]core.Quote, 0, len(quotes))
	for _, q := range quotes {
		if !isVerbatim(article.Body, q.Text) {
			monitor.QuoteDropped(header.Number, q)
			continue
		}
		kept = append(kept, q)
	}
	if len(kept) == 0 {
		return nil
	}

	result := &core.SearchResult{
		Header: header,
		URL:    article.URL,
		Quotes: kept,
	}
	monitor.CandidateMatched(result)
	return result
}
