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


// Package refsearch answers free-text descriptions of medical conditions
// with supporting quotes from a local reference article corpus, using an
// LLM for both coarse relevance selection and quote extraction.
package refsearch

import (
	"log/slog"

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/ai/openai"
	"github.com/poiesic/refsearch/corpus"
	badgerstore "github.com/poiesic/refsearch/corpus/badger"
	"github.com/poiesic/refsearch/corpus/fsdir"
	"github.com/poiesic/refsearch/search"
)

// Library bundles an article store with an AI provider and hands out
// ready-to-use searchers.
type Library struct {
	store    corpus.ArticleStore
	provider ai.Provider
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig supplies the AI configuration used to build the provider.
func WithAIConfig(cfg *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = cfg
	}
}

// OpenDir opens a library over a markdown corpus directory.
func OpenDir(dir string, opts ...LibraryOption) (*Library, error) {
	store, err := fsdir.Open(dir)
	if err != nil {
		return nil, err
	}
	return newLibrary(store, opts...)
}

// OpenDB opens a library over a BadgerDB corpus previously populated by
// the seeder.
func OpenDB(path string, opts ...LibraryOption) (*Library, error) {
	store, err := badgerstore.Open(path, false)
	if err != nil {
		return nil, err
	}
	return newLibrary(store, opts...)
}

func newLibrary(store corpus.ArticleStore, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Library{
		store:    store,
		provider: provider,
		logger:   slog.Default().With("component", "library"),
	}, nil
}

// Store returns the underlying article store.
func (l *Library) Store() corpus.ArticleStore {
	return l.store
}

// NewSearcher creates a searcher over the library's store and provider.
func (l *Library) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(l.store, l.provider, opts...)
}

// Close releases the provider and the store.
func (l *Library) Close() error {
	if err := l.provider.Close(); err != nil {
		l.logger.Warn("closing AI provider", "err", err)
	}
	return l.store.Close()
}
