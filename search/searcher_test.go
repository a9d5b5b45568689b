package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/ai/mock"
	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
	badgerstore "github.com/poiesic/refsearch/corpus/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArticles = []struct {
	header core.ArticleHeader
	url    string
	body   string
}{
	{core.ArticleHeader{Number: 1, Title: "Infectious diseases"}, "https://example.org/r/1", "Fever above 38 degrees.\nPersistent cough for two weeks.\n"},
	{core.ArticleHeader{Number: 2, Title: "Respiratory conditions"}, "https://example.org/r/2", "Wheezing on exertion.\nShortness of breath at rest.\n"},
	{core.ArticleHeader{Number: 3, Title: "Neurological disorders"}, "https://example.org/r/3", "Recurrent severe headache.\nVisual aura before onset.\n"},
}

func newTestStore(t *testing.T) *badgerstore.Store {
	t.Helper()
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, a := range testArticles {
		err := store.PutArticle(ctx, a.header, &core.Article{
			Number: a.header.Number,
			URL:    a.url,
			Body:   a.body,
		})
		require.NoError(t, err)
	}
	return store
}

func selectIDs(ids ...core.ArticleID) *mock.MockArticleSelector {
	return &mock.MockArticleSelector{
		SelectFunc: func(context.Context, string, core.Catalog) ([]core.ArticleID, error) {
			return ids, nil
		},
	}
}

func quoteFirstLine() *mock.MockQuoteExtractor {
	return &mock.MockQuoteExtractor{
		ExtractFunc: func(_ context.Context, _ string, article *core.Article) ([]core.Quote, error) {
			line, _, _ := strings.Cut(article.Body, "\n")
			return []core.Quote{{Text: line, Rationale: "symptom match"}}, nil
		},
	}
}

func newTestSearcher(t *testing.T, selector *mock.MockArticleSelector, extractor *mock.MockQuoteExtractor, opts ...Option) *Searcher {
	t.Helper()
	s, err := NewSearcher(newTestStore(t), mock.NewMockProviderWithServices(selector, extractor), opts...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

// recordingMonitor captures every callback for assertions.
type recordingMonitor struct {
	mu             sync.Mutex
	started        []string
	afterSelection [][]core.ArticleID
	selectionErrs  []error
	droppedIDs     []core.ArticleID
	failedIDs      []core.ArticleID
	droppedQuotes  []core.Quote
	matched        []core.ArticleID
	finished       [][]core.SearchResult
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (r *recordingMonitor) Start(condition string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, condition)
}

func (r *recordingMonitor) AfterSelection(candidates []core.ArticleID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterSelection = append(r.afterSelection, candidates)
}

func (r *recordingMonitor) SelectionFailed(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selectionErrs = append(r.selectionErrs, err)
}

func (r *recordingMonitor) CandidateDropped(id core.ArticleID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.droppedIDs = append(r.droppedIDs, id)
}

func (r *recordingMonitor) CandidateFailed(id core.ArticleID, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedIDs = append(r.failedIDs, id)
}

func (r *recordingMonitor) QuoteDropped(_ core.ArticleID, quote core.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.droppedQuotes = append(r.droppedQuotes, quote)
}

func (r *recordingMonitor) CandidateMatched(result *core.SearchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matched = append(r.matched, result.Header.Number)
}

func (r *recordingMonitor) Finish(results []core.SearchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, results)
}

func TestNewSearcher(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewSearcher(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(newTestStore(t), nil)
		assert.ErrorIs(t, err, ErrProviderRequired)
	})
}

func TestSearchSingleMatch(t *testing.T) {
	searcher := newTestSearcher(t, selectIDs(2), quoteFirstLine())

	results, err := searcher.Search(context.Background(), "shortness of breath")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.ArticleID(2), results[0].Header.Number)
	assert.Equal(t, "Respiratory conditions", results[0].Header.Title)
	assert.Equal(t, "https://example.org/r/2", results[0].URL)
	require.Len(t, results[0].Quotes, 1)
	assert.Equal(t, "Wheezing on exertion.", results[0].Quotes[0].Text)
}

func TestSearchEmptySelection(t *testing.T) {
	extractor := quoteFirstLine()
	searcher := newTestSearcher(t, selectIDs(), extractor)

	results, err := searcher.Search(context.Background(), "nothing relevant")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, extractor.CallCount(), "extractor must not run without candidates")
}

func TestSearchSelectionFailure(t *testing.T) {
	selector := &mock.MockArticleSelector{
		SelectFunc: func(context.Context, string, core.Catalog) ([]core.ArticleID, error) {
			return nil, ai.ErrSelectionFailed
		},
	}
	extractor := quoteFirstLine()
	searcher := newTestSearcher(t, selector, extractor)
	monitor := &recordingMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), "cough", monitor)
	require.NoError(t, err, "a broken stage one degrades to an empty answer")
	assert.Empty(t, results)
	assert.Zero(t, extractor.CallCount())
	require.Len(t, monitor.selectionErrs, 1)
	assert.ErrorIs(t, monitor.selectionErrs[0], ai.ErrSelectionFailed)
	require.Len(t, monitor.finished, 1)
	assert.Empty(t, monitor.finished[0])
}

func TestSearchHallucinatedNumber(t *testing.T) {
	extractor := quoteFirstLine()
	searcher := newTestSearcher(t, selectIDs(99, 2), extractor)
	monitor := &recordingMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), "wheezing", monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.ArticleID(2), results[0].Header.Number)

	// The unknown number is reported and its text is never loaded.
	assert.Equal(t, []core.ArticleID{99}, monitor.droppedIDs)
	assert.Equal(t, 1, extractor.CallCount())
	assert.Equal(t, [][]core.ArticleID{{2}}, monitor.afterSelection)
}

func TestSearchDuplicateSelection(t *testing.T) {
	extractor := quoteFirstLine()
	searcher := newTestSearcher(t, selectIDs(2, 2, 2), extractor)

	results, err := searcher.Search(context.Background(), "wheezing")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, extractor.CallCount(), "duplicates collapse to one candidate")
}

func TestSearchExtractionFailureIsolated(t *testing.T) {
	extractor := &mock.MockQuoteExtractor{
		ExtractFunc: func(_ context.Context, _ string, article *core.Article) ([]core.Quote, error) {
			if article.Number == 1 {
				return nil, ai.ErrExtractionFailed
			}
			return []core.Quote{{Text: "Wheezing on exertion.", Rationale: "r"}}, nil
		},
	}
	searcher := newTestSearcher(t, selectIDs(1, 2), extractor)
	monitor := &recordingMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), "cough", monitor)
	require.NoError(t, err, "one failed candidate never aborts the rest")
	require.Len(t, results, 1)
	assert.Equal(t, core.ArticleID(2), results[0].Header.Number)
	assert.Equal(t, []core.ArticleID{1}, monitor.failedIDs)
}

func TestSearchMissingArticleIsolated(t *testing.T) {
	store := newTestStore(t)
	searcher, err := NewSearcher(
		&missingArticleStore{ArticleStore: store, missing: 1},
		mock.NewMockProviderWithServices(selectIDs(1, 2), quoteFirstLine()),
	)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)
	monitor := &recordingMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), "cough", monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.ArticleID(2), results[0].Header.Number)
	assert.Equal(t, []core.ArticleID{1}, monitor.failedIDs)
}

func TestSearchCatalogFailureIsFatal(t *testing.T) {
	searcher, err := NewSearcher(
		&brokenCatalogStore{},
		mock.NewMockProviderWithServices(selectIDs(1), quoteFirstLine()),
	)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)

	_, err = searcher.Search(context.Background(), "cough")
	assert.ErrorIs(t, err, corpus.ErrStoreUnavailable)
}

func TestSearchCatalogOrderUnderConcurrency(t *testing.T) {
	// Later candidates finish first; results must still come back in
	// catalog order.
	extractor := &mock.MockQuoteExtractor{
		ExtractFunc: func(_ context.Context, _ string, article *core.Article) ([]core.Quote, error) {
			time.Sleep(time.Duration(4-int(article.Number)) * 20 * time.Millisecond)
			line, _, _ := strings.Cut(article.Body, "\n")
			return []core.Quote{{Text: line, Rationale: "r"}}, nil
		},
	}
	searcher := newTestSearcher(t, selectIDs(3, 1, 2), extractor, WithMaxInFlight(3))

	results, err := searcher.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, want := range []core.ArticleID{1, 2, 3} {
		assert.Equal(t, want, results[i].Header.Number)
	}
}

func TestSearchParaphrasedQuotesDropped(t *testing.T) {
	extractor := &mock.MockQuoteExtractor{
		ExtractFunc: func(context.Context, string, *core.Article) ([]core.Quote, error) {
			return []core.Quote{
				{Text: "The patient wheezes when exercising.", Rationale: "r"}, // paraphrase
				{Text: "Wheezing  on\nexertion.", Rationale: "r"},              // verbatim modulo whitespace
			}, nil
		},
	}
	searcher := newTestSearcher(t, selectIDs(2), extractor)
	monitor := &recordingMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), "wheezing", monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Quotes, 1)
	assert.Equal(t, "Wheezing  on\nexertion.", results[0].Quotes[0].Text)
	require.Len(t, monitor.droppedQuotes, 1)
}

func TestSearchAllQuotesParaphrasedMeansNoResult(t *testing.T) {
	extractor := &mock.MockQuoteExtractor{
		ExtractFunc: func(context.Context, string, *core.Article) ([]core.Quote, error) {
			return []core.Quote{{Text: "Not in the article at all.", Rationale: "r"}}, nil
		},
	}
	searcher := newTestSearcher(t, selectIDs(2), extractor)

	results, err := searcher.Search(context.Background(), "wheezing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	extractor := &mock.MockQuoteExtractor{
		ExtractFunc: func(_ context.Context, _ string, article *core.Article) ([]core.Quote, error) {
			cancel()
			line, _, _ := strings.Cut(article.Body, "\n")
			return []core.Quote{{Text: line, Rationale: "r"}}, nil
		},
	}
	searcher := newTestSearcher(t, selectIDs(1, 2, 3), extractor, WithMaxInFlight(1))

	results, err := searcher.Search(ctx, "cough")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results, "partial results are not delivered on cancellation")
}

func TestSearchCancelledDuringSelection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	selector := &mock.MockArticleSelector{
		SelectFunc: func(callCtx context.Context, _ string, _ core.Catalog) ([]core.ArticleID, error) {
			cancel()
			return nil, callCtx.Err()
		},
	}
	searcher := newTestSearcher(t, selector, quoteFirstLine())

	_, err := searcher.Search(ctx, "cough")
	assert.ErrorIs(t, err, context.Canceled)
}

// missingArticleStore serves the full catalog but pretends one article
// record is gone.
type missingArticleStore struct {
	corpus.ArticleStore
	missing core.ArticleID
}

func (m *missingArticleStore) Article(ctx context.Context, id core.ArticleID) (*core.Article, error) {
	if id == m.missing {
		return nil, corpus.ErrArticleNotFound
	}
	return m.ArticleStore.Article(ctx, id)
}

// brokenCatalogStore fails every catalog load.
type brokenCatalogStore struct{}

func (b *brokenCatalogStore) Catalog(context.Context) (core.Catalog, error) {
	return nil, errors.Join(corpus.ErrStoreUnavailable, errors.New("disk gone"))
}

func (b *brokenCatalogStore) Article(context.Context, core.ArticleID) (*core.Article, error) {
	return nil, corpus.ErrArticleNotFound
}

func (b *brokenCatalogStore) Close() error { return nil }
