package refsearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost("http://localhost:11434/v1"),
		ai.WithAPIKey("test-key"),
		ai.WithModel("test-model"),
	)
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "headers.md"),
		[]byte("Infectious diseases\nRespiratory conditions\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"),
		[]byte("https://example.org/r/1\nFever above 38 degrees.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.md"),
		[]byte("https://example.org/r/2\nWheezing on exertion.\n"), 0o644))
	return dir
}

func TestOpenDir(t *testing.T) {
	t.Run("serves the corpus", func(t *testing.T) {
		lib, err := OpenDir(writeCorpus(t), WithAIConfig(testAIConfig()))
		require.NoError(t, err)
		defer lib.Close()

		catalog, err := lib.Store().Catalog(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, catalog.Len())
		assert.Equal(t, "Respiratory conditions", catalog[1].Title)

		article, err := lib.Store().Article(context.Background(), core.ArticleID(1))
		require.NoError(t, err)
		assert.Equal(t, "https://example.org/r/1", article.URL)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := OpenDir(filepath.Join(t.TempDir(), "nope"), WithAIConfig(testAIConfig()))
		assert.Error(t, err)
	})
}

func TestOpenDB(t *testing.T) {
	lib, err := OpenDB(filepath.Join(t.TempDir(), "db"), WithAIConfig(testAIConfig()))
	require.NoError(t, err)
	defer lib.Close()

	catalog, err := lib.Store().Catalog(context.Background())
	require.NoError(t, err)
	assert.Zero(t, catalog.Len(), "a fresh database starts empty")
}

func TestLibraryNewSearcher(t *testing.T) {
	lib, err := OpenDir(writeCorpus(t), WithAIConfig(testAIConfig()))
	require.NoError(t, err)
	defer lib.Close()

	searcher, err := lib.NewSearcher()
	require.NoError(t, err)
	searcher.Release()
}

func TestLibraryRejectsInvalidAIConfig(t *testing.T) {
	_, err := OpenDir(writeCorpus(t), WithAIConfig(ai.NewConfig(ai.WithAPIKey(""))))
	assert.Error(t, err)
}
