package fsdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCorpus lays out a minimal corpus directory:
// headers.md plus one file per article.
func writeCorpus(t *testing.T, headers string, articles map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "headers.md"), []byte(headers), 0644))
	for name, content := range articles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestOpen(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		store, err := Open(t.TempDir())
		require.NoError(t, err)
		defer store.Close()
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, corpus.ErrStoreUnavailable)
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		_, err := Open(file)
		assert.ErrorIs(t, err, corpus.ErrStoreUnavailable)
	})
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers headers from one", func(t *testing.T) {
		dir := writeCorpus(t, "Flu\nAsthma\nMycoses\n", nil)
		store, err := Open(dir)
		require.NoError(t, err)
		defer store.Close()

		catalog, err := store.Catalog(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, catalog.Len())
		assert.Equal(t, core.ArticleHeader{Number: 1, Title: "Flu"}, catalog[0])
		assert.Equal(t, core.ArticleHeader{Number: 3, Title: "Mycoses"}, catalog[2])
	})

	t.Run("missing listing", func(t *testing.T) {
		store, err := Open(t.TempDir())
		require.NoError(t, err)
		defer store.Close()

		_, err = store.Catalog(ctx)
		assert.ErrorIs(t, err, corpus.ErrStoreUnavailable)
	})

	t.Run("blank line in listing is an integrity fault", func(t *testing.T) {
		dir := writeCorpus(t, "Flu\n\nMycoses\n", nil)
		store, err := Open(dir)
		require.NoError(t, err)
		defer store.Close()

		_, err = store.Catalog(ctx)
		assert.ErrorIs(t, err, corpus.ErrStoreUnavailable)
	})
}

func TestArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("splits URL from body", func(t *testing.T) {
		dir := writeCorpus(t, "Flu\n", map[string]string{
			"1.md": "https://example.org/flu\nFever above 38C.\nDry cough.\n",
		})
		store, err := Open(dir)
		require.NoError(t, err)
		defer store.Close()

		article, err := store.Article(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, core.ArticleID(1), article.Number)
		assert.Equal(t, "https://example.org/flu", article.URL)
		assert.Equal(t, "Fever above 38C.\nDry cough.\n", article.Body)
	})

	t.Run("missing file", func(t *testing.T) {
		dir := writeCorpus(t, "Flu\n", nil)
		store, err := Open(dir)
		require.NoError(t, err)
		defer store.Close()

		_, err = store.Article(ctx, 1)
		assert.ErrorIs(t, err, corpus.ErrArticleNotFound)
	})

	t.Run("number outside valid range", func(t *testing.T) {
		dir := writeCorpus(t, "Flu\n", nil)
		store, err := Open(dir)
		require.NoError(t, err)
		defer store.Close()

		for _, id := range []core.ArticleID{0, -1, 1000} {
			_, err = store.Article(ctx, id)
			assert.ErrorIs(t, err, corpus.ErrArticleNotFound, "id %d", id)
		}
	})

	t.Run("symlink escaping the corpus is rejected", func(t *testing.T) {
		outside := t.TempDir()
		secret := filepath.Join(outside, "secret.md")
		require.NoError(t, os.WriteFile(secret, []byte("url\nclassified"), 0644))

		dir := writeCorpus(t, "Flu\n", nil)
		require.NoError(t, os.Symlink(secret, filepath.Join(dir, "1.md")))

		store, err := Open(dir)
		require.NoError(t, err)
		defer store.Close()

		_, err = store.Article(context.Background(), 1)
		assert.ErrorIs(t, err, corpus.ErrArticleNotFound)
	})
}
