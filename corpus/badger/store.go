package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
)

// Store serves the article corpus out of a BadgerDB database. It implements
// corpus.ArticleWriter so a seeder can populate and refresh it.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ corpus.ArticleWriter = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a BadgerDB-backed store at the specified path.
// Creates the directory if it doesn't exist. With inMemory set, the path is
// ignored and nothing touches disk.
func Open(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
				}
			} else {
				return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", corpus.ErrStoreUnavailable, filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "badger-store"),
	}, nil
}

// Catalog iterates the header keyspace and returns all catalog entries.
func (s *Store) Catalog(ctx context.Context) (core.Catalog, error) {
	if s.db.IsClosed() {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, corpus.ErrStoreClosed)
	}

	var catalog core.Catalog
	err := s.db.View(func(tx *badger.Txn) error {
		it := tx.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   64,
			Prefix:         []byte(headerPrefix + ":"),
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				header, err := corpus.UnmarshalHeader(val)
				if err != nil {
					return err
				}
				catalog = append(catalog, header)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to read catalog", "err", err)
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}
	if err := corpus.CheckCatalog(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Article fetches one article record by number.
func (s *Store) Article(ctx context.Context, id core.ArticleID) (*core.Article, error) {
	if s.db.IsClosed() {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, corpus.ErrStoreClosed)
	}
	if !id.Valid() {
		return nil, fmt.Errorf("%w: number %d", corpus.ErrArticleNotFound, id)
	}

	var article *core.Article
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArticleKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			article, err = corpus.UnmarshalArticle(id, val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: number %d", corpus.ErrArticleNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}
	return article, nil
}

// PutArticle upserts an article, its catalog title and its body digest in
// one transaction.
func (s *Store) PutArticle(ctx context.Context, header core.ArticleHeader, article *core.Article) error {
	if err := core.ValidateHeader(header); err != nil {
		return err
	}
	if header.Number != article.Number {
		return fmt.Errorf("header number %d does not match article number %d", header.Number, article.Number)
	}

	return s.db.Update(func(tx *badger.Txn) error {
		if err := tx.Set(makeHeaderKey(header.Number), corpus.MarshalHeader(header)); err != nil {
			return err
		}
		if err := tx.Set(makeArticleKey(article.Number), corpus.MarshalArticle(article)); err != nil {
			return err
		}
		return tx.Set(makeDigestKey(article.Number), corpus.MarshalDigest(article.Digest()))
	})
}

// Digest returns the stored body digest for an article, or 0 if absent.
func (s *Store) Digest(ctx context.Context, id core.ArticleID) (uint64, error) {
	var digest uint64
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDigestKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			digest, err = corpus.UnmarshalDigest(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", corpus.ErrStoreUnavailable, err)
	}
	return digest, nil
}

// Close closes the underlying BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}
