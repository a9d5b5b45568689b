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


// Package seed imports an article corpus from one store into another,
// typically from a scraped markdown directory into a BadgerDB store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
	"golang.org/x/sync/errgroup"
)

const defaultReaders = 8

// Stats reports what one seeding run did.
type Stats struct {
	Imported int
	Skipped  int
	Missing  int
}

// Importer copies articles from a source store into a writable destination.
type Importer struct {
	source  corpus.ArticleStore
	dest    corpus.ArticleWriter
	readers int
	logger  *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithReaders sets the number of concurrent source reads.
// Default is 8, minimum 1.
func WithReaders(n int) Option {
	return func(im *Importer) {
		if n < 1 {
			n = 1
		}
		im.readers = n
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
	}
}

// NewImporter creates an importer from source into dest.
func NewImporter(source corpus.ArticleStore, dest corpus.ArticleWriter, opts ...Option) (*Importer, error) {
	if source == nil {
		return nil, errors.New("source store required")
	}
	if dest == nil {
		return nil, errors.New("destination store required")
	}
	im := &Importer{
		source:  source,
		dest:    dest,
		readers: defaultReaders,
		logger:  slog.Default().With("component", "seed"),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im, nil
}

// Run copies every cataloged article from source to dest. Articles whose
// body digest matches the one already stored are skipped. Articles listed
// in the catalog but missing from the source are counted and logged, not
// fatal. Source reads run concurrently, bounded by the readers setting.
func (im *Importer) Run(ctx context.Context) (Stats, error) {
	catalog, err := im.source.Catalog(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("reading source catalog: %w", err)
	}

	var imported, skipped, missing atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(im.readers)
	for _, header := range catalog {
		g.Go(func() error {
			article, err := im.source.Article(ctx, header.Number)
			if err != nil {
				if errors.Is(err, corpus.ErrArticleNotFound) {
					im.logger.Warn("cataloged article missing from source", "number", header.Number)
					missing.Add(1)
					return nil
				}
				return err
			}

			stored, err := im.dest.Digest(ctx, header.Number)
			if err != nil {
				return err
			}
			if stored != 0 && stored == core.ContentDigest(article.Body) {
				im.logger.Debug("article unchanged, skipping", "number", header.Number)
				skipped.Add(1)
				return nil
			}

			if err := im.dest.PutArticle(ctx, header, article); err != nil {
				return err
			}
			imported.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Imported: int(imported.Load()),
		Skipped:  int(skipped.Load()),
		Missing:  int(missing.Load()),
	}
	im.logger.Info("seeding finished",
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"missing", stats.Missing)
	return stats, nil
}
