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


package fsdir

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
)

// headersFile lists one article title per line; line i is article i+1.
const headersFile = "headers.md"

// Store reads the corpus from a directory of markdown files. Each article
// lives in "{N}.md" whose first line is the source URL and the remainder is
// the article body. The store is read-only.
type Store struct {
	base   string
	logger *slog.Logger
}

var _ corpus.ArticleStore = (*Store)(nil)

// Open creates a store over the given corpus directory. The directory must
// exist; its contents are read lazily, per call.
func Open(dir string) (*Store, error) {
	base, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", corpus.ErrStoreUnavailable, base)
	}
	return &Store{
		base:   base,
		logger: slog.Default().With("component", "fsdir-store"),
	}, nil
}

// Catalog reads headers.md and returns one header per line, numbered from 1.
func (s *Store) Catalog(ctx context.Context) (core.Catalog, error) {
	path, err := s.resolve(headersFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("failed to read catalog listing", "path", path, "err", err)
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	catalog := make(core.Catalog, 0, len(lines))
	for i, title := range lines {
		catalog = append(catalog, core.ArticleHeader{
			Number: core.ArticleID(i + 1),
			Title:  strings.TrimSpace(title),
		})
	}
	if err := corpus.CheckCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Article reads "{N}.md" and splits it into URL (first line) and body.
func (s *Store) Article(ctx context.Context, id core.ArticleID) (*core.Article, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: number %d", corpus.ErrArticleNotFound, id)
	}
	path, err := s.resolve(fmt.Sprintf("%d.md", id))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrArticleNotFound, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: number %d", corpus.ErrArticleNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}

	url, body, _ := strings.Cut(string(data), "\n")
	return &core.Article{Number: id, URL: strings.TrimSpace(url), Body: body}, nil
}

// Close is a no-op; the store holds no resources between calls.
func (s *Store) Close() error {
	return nil
}

// resolve joins name onto the base directory and verifies the result stays
// inside it. Symlinks that escape the corpus directory are rejected.
func (s *Store) resolve(name string) (string, error) {
	candidate := filepath.Join(s.base, name)
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", err
	}
	resolvedBase, err := filepath.EvalSymlinks(s.base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(resolvedBase, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes corpus directory", name)
	}
	return resolved, nil
}
