package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	badgerstore "github.com/poiesic/refsearch/corpus/badger"
	"github.com/poiesic/refsearch/corpus/fsdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSourceCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "headers.md"), []byte("Flu\nAsthma\nMycoses\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), []byte("https://example.org/1\nFever.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.md"), []byte("https://example.org/2\nWheezing.\n"), 0644))
	// 3.md deliberately missing
	return dir
}

func TestImporterRun(t *testing.T) {
	dir := writeSourceCorpus(t)
	source, err := fsdir.Open(dir)
	require.NoError(t, err)
	defer source.Close()

	dest, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer dest.Close()

	importer, err := NewImporter(source, dest, WithReaders(2))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("first run imports everything present", func(t *testing.T) {
		stats, err := importer.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Imported)
		assert.Equal(t, 0, stats.Skipped)
		assert.Equal(t, 1, stats.Missing)

		article, err := dest.Article(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Wheezing.\n", article.Body)
	})

	t.Run("second run skips unchanged bodies", func(t *testing.T) {
		stats, err := importer.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Imported)
		assert.Equal(t, 2, stats.Skipped)
	})

	t.Run("changed body is re-imported", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), []byte("https://example.org/1\nHigh fever.\n"), 0644))

		stats, err := importer.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Imported)
		assert.Equal(t, 1, stats.Skipped)

		article, err := dest.Article(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "High fever.\n", article.Body)
	})
}

func TestNewImporterValidation(t *testing.T) {
	dest, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer dest.Close()

	_, err = NewImporter(nil, dest)
	assert.Error(t, err)

	_, err = NewImporter(dest, nil)
	assert.Error(t, err)
}
