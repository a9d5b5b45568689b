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


// Package server exposes the corpus and the search pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
	"github.com/poiesic/refsearch/search"
)

// Server serves article text and search requests over HTTP.
type Server struct {
	store    corpus.ArticleStore
	searcher *search.Searcher
	logger   *slog.Logger
	engine   *gin.Engine
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Condition string `json:"condition" binding:"required"`
}

// QuoteResponse is one extracted quote in a search response.
type QuoteResponse struct {
	Text      string `json:"text"`
	Rationale string `json:"rationale,omitempty"`
}

// ResultResponse is one matched article in a search response.
type ResultResponse struct {
	Number int             `json:"number"`
	Title  string          `json:"title"`
	URL    string          `json:"url,omitempty"`
	Quotes []QuoteResponse `json:"quotes"`
}

// SearchResponse echoes the condition back with the matched articles.
type SearchResponse struct {
	Condition string           `json:"condition"`
	Results   []ResultResponse `json:"results"`
}

// New creates an HTTP server over the given store and searcher.
// The searcher may be nil, in which case POST /search returns 503.
func New(store corpus.ArticleStore, searcher *search.Searcher) (*Server, error) {
	if store == nil {
		return nil, errors.New("article store required")
	}

	s := &Server{
		store:    store,
		searcher: searcher,
		logger:   slog.Default().With("component", "http"),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/article/:number", s.handleArticle)
	engine.POST("/search", s.handleSearch)

	s.engine = engine
	return s, nil
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http server started", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// handleArticle serves one article's raw text, the way the corpus stores it.
func (s *Server) handleArticle(c *gin.Context) {
	id, err := core.ParseArticleID(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article number"})
		return
	}

	article, err := s.store.Article(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, corpus.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		s.logger.Error("article fetch failed", "number", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.String(http.StatusOK, article.Body)
}

func (s *Server) handleSearch(c *gin.Context) {
	if s.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search not configured"})
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "condition is required"})
		return
	}

	results, err := s.searcher.SearchWithMonitor(c.Request.Context(), req.Condition, search.NewLogMonitor(s.logger))
	if err != nil {
		s.logger.Error("search failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search unavailable"})
		return
	}

	response := SearchResponse{
		Condition: req.Condition,
		Results:   make([]ResultResponse, 0, len(results)),
	}
	for _, r := range results {
		rr := ResultResponse{
			Number: int(r.Header.Number),
			Title:  r.Header.Title,
			URL:    r.URL,
			Quotes: make([]QuoteResponse, 0, len(r.Quotes)),
		}
		for _, q := range r.Quotes {
			rr.Quotes = append(rr.Quotes, QuoteResponse{Text: q.Text, Rationale: q.Rationale})
		}
		response.Results = append(response.Results, rr)
	}
	c.JSON(http.StatusOK, response)
}
