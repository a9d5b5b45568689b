package search

import (
	"log/slog"

	"github.com/poiesic/refsearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during
// search. A search that ends with zero results looks the same to the user
// whether nothing was relevant or every model call failed; the monitor is
// where the difference shows up.
type SearchMonitor interface {
	Start(condition string)
	AfterSelection(candidates []core.ArticleID)
	SelectionFailed(err error)
	CandidateDropped(id core.ArticleID) // selected id absent from the catalog
	CandidateFailed(id core.ArticleID, err error)
	QuoteDropped(id core.ArticleID, quote core.Quote) // failed verbatim verification
	CandidateMatched(result *core.SearchResult)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterSelection(_ []core.ArticleID)         {}
func (n *noopMonitor) SelectionFailed(_ error)                   {}
func (n *noopMonitor) CandidateDropped(_ core.ArticleID)         {}
func (n *noopMonitor) CandidateFailed(_ core.ArticleID, _ error) {}
func (n *noopMonitor) QuoteDropped(_ core.ArticleID, _ core.Quote) {
}
func (n *noopMonitor) CandidateMatched(_ *core.SearchResult) {}
func (n *noopMonitor) Finish(_ []core.SearchResult)          {}

// LogMonitor is a SearchMonitor that records every stage through slog.
// Delivery layers use it so operators can tell "nothing relevant" apart
// from "stage one broke".
type LogMonitor struct {
	logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a monitor writing to the given logger.
// A nil logger falls back to slog.Default().
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "search-monitor")}
}

func (m *LogMonitor) Start(condition string) {
	m.logger.Info("search started", "condition_len", len(condition))
}

func (m *LogMonitor) AfterSelection(candidates []core.ArticleID) {
	m.logger.Info("stage one selected candidates", "count", len(candidates))
}

func (m *LogMonitor) SelectionFailed(err error) {
	m.logger.Error("stage one failed, treating as empty selection", "err", err)
}

func (m *LogMonitor) CandidateDropped(id core.ArticleID) {
	m.logger.Debug("model returned unknown article number", "number", id)
}

func (m *LogMonitor) CandidateFailed(id core.ArticleID, err error) {
	m.logger.Warn("candidate contributes nothing", "number", id, "err", err)
}

func (m *LogMonitor) QuoteDropped(id core.ArticleID, quote core.Quote) {
	m.logger.Warn("model paraphrased, dropping quote", "number", id, "quote_len", len(quote.Text))
}

func (m *LogMonitor) CandidateMatched(result *core.SearchResult) {
	m.logger.Info("article matched", "number", result.Header.Number, "quotes", len(result.Quotes))
}

func (m *LogMonitor) Finish(results []core.SearchResult) {
	m.logger.Info("search finished", "results", len(results))
}
