package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArticleID(t *testing.T) {
	t.Run("valid numbers", func(t *testing.T) {
		for _, s := range []string{"1", "57", "999"} {
			id, err := ParseArticleID(s)
			require.NoError(t, err)
			assert.True(t, id.Valid())
			assert.Equal(t, s, id.String())
		}
	})

	t.Run("invalid numbers", func(t *testing.T) {
		for _, s := range []string{"", "0", "01", "1000", "-5", "12a", "5.md", "../7"} {
			_, err := ParseArticleID(s)
			assert.ErrorIs(t, err, ErrInvalidArticleID, "input %q", s)
		}
	})
}

func TestContentDigest(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, ContentDigest("some article body"), ContentDigest("some article body"))
	})

	t.Run("sensitive to content", func(t *testing.T) {
		assert.NotEqual(t, ContentDigest("some article body"), ContentDigest("some article body."))
	})
}

func TestCatalogLookup(t *testing.T) {
	catalog := Catalog{
		{Number: 1, Title: "Infectious diseases"},
		{Number: 2, Title: "Respiratory diseases"},
	}

	assert.Equal(t, 2, catalog.Len())
	assert.True(t, catalog.Has(2))
	assert.False(t, catalog.Has(3))

	h, ok := catalog.Header(1)
	require.True(t, ok)
	assert.Equal(t, "Infectious diseases", h.Title)

	_, ok = catalog.Header(99)
	assert.False(t, ok)
}
