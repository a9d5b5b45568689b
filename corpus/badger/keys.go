package badger

import (
	"fmt"

	"github.com/poiesic/refsearch/core"
)

// Key prefixes for different record types
const (
	headerPrefix  = "arthdr"
	articlePrefix = "artrec"
	digestPrefix  = "artdig"
)

// Article numbers are zero-padded to three digits so that lexicographic key
// order matches numeric catalog order.

func makeHeaderKey(id core.ArticleID) []byte {
	return []byte(fmt.Sprintf("%s:%03d", headerPrefix, id))
}

func makeArticleKey(id core.ArticleID) []byte {
	return []byte(fmt.Sprintf("%s:%03d", articlePrefix, id))
}

func makeDigestKey(id core.ArticleID) []byte {
	return []byte(fmt.Sprintf("%s:%03d", digestPrefix, id))
}
