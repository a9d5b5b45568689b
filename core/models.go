package core

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ArticleID is the number of a reference article within the corpus.
// Valid numbers are 1..999.
type ArticleID int

// articleNumberRe matches the textual form of a valid article number.
var articleNumberRe = regexp.MustCompile(`^(?:[1-9]\d{0,2})$`)

// ParseArticleID parses the textual form of an article number.
func ParseArticleID(s string) (ArticleID, error) {
	if !articleNumberRe.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidArticleID, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidArticleID, s)
	}
	return ArticleID(n), nil
}

// Valid reports whether the article number is in the accepted range.
func (id ArticleID) Valid() bool {
	return id >= 1 && id <= 999
}

// String returns the decimal form of the article number.
func (id ArticleID) String() string {
	return fmt.Sprintf("%d", int(id))
}

// ContentDigest generates a deterministic digest of text content using
// BLAKE2b hashing. Identical content produces identical digests, which lets
// the corpus seeder skip articles whose bodies have not changed.
func ContentDigest(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// ArticleHeader is one catalog entry: an article number and its title.
type ArticleHeader struct {
	Number ArticleID
	Title  string
}

// Catalog is the full list of known articles, used for coarse selection.
// Article numbers within a catalog are unique.
type Catalog []ArticleHeader

// Len returns the number of catalog entries.
func (c Catalog) Len() int {
	return len(c)
}

// Has reports whether the catalog contains the given article number.
func (c Catalog) Has(id ArticleID) bool {
	_, ok := c.Header(id)
	return ok
}

// Header returns the catalog entry for the given article number.
func (c Catalog) Header(id ArticleID) (ArticleHeader, bool) {
	for _, h := range c {
		if h.Number == id {
			return h, true
		}
	}
	return ArticleHeader{}, false
}

// Article is the full text of one reference article. URL points at the
// source document the article was taken from; it may be empty.
type Article struct {
	Number ArticleID
	URL    string
	Body   string
}

// Digest returns the content digest of the article body.
func (a *Article) Digest() uint64 {
	return ContentDigest(a.Body)
}

// Quote is a model-extracted excerpt of an article body, together with the
// model's one-line rationale for why the article is relevant. The rationale
// is shared across all quotes extracted from one article.
type Quote struct {
	Text      string
	Rationale string
}

// SearchResult is the outcome for one article that passed both retrieval
// stages: its catalog header, source URL, and the supporting quotes.
// Articles without quotes never appear as results.
type SearchResult struct {
	Header ArticleHeader
	URL    string
	Quotes []Quote
}
