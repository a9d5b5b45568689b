package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/poiesic/refsearch/core"
)

// telegramMaxLen is Telegram's hard limit on message size.
// https://core.telegram.org/bots/api#sendmessage
const telegramMaxLen = 4096

// formatResult renders one search result as an HTML message:
//
//	<linked "N. Title" header>
//	<rationale>
//	Possibly relevant quotes:
//	<pre>quote</pre>...
func formatResult(r core.SearchResult) string {
	var parts []string

	header := fmt.Sprintf("%d. %s", r.Header.Number, html.EscapeString(r.Header.Title))
	if r.URL != "" {
		parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(r.URL), header))
	} else {
		parts = append(parts, header)
	}

	if len(r.Quotes) > 0 && strings.TrimSpace(r.Quotes[0].Rationale) != "" {
		parts = append(parts, html.EscapeString(strings.TrimSpace(r.Quotes[0].Rationale)))
	}

	parts = append(parts, "Possibly relevant quotes:")
	for _, q := range r.Quotes {
		parts = append(parts, "<pre>"+html.EscapeString(strings.TrimSpace(q.Text))+"</pre>")
	}

	return strings.Join(parts, "\n")
}

// formatArticle renders a raw article fetched via /article.
func formatArticle(a *core.Article) string {
	body := html.EscapeString(a.Body)
	if a.URL != "" {
		return fmt.Sprintf(`<a href="%s">Article link</a>`+"\n%s", html.EscapeString(a.URL), body)
	}
	return body
}

// splitMessage splits text into chunks of at most telegramMaxLen runes,
// preferring line boundaries so HTML entities are not torn apart mid-line.
// A single oversized line is hard-split.
func splitMessage(text string) []string {
	if len([]rune(text)) <= telegramMaxLen {
		return []string{text}
	}

	var chunks []string
	var buf []rune
	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		if len(buf)+len(runes) > telegramMaxLen {
			if len(buf) > 0 {
				chunks = append(chunks, string(buf))
				buf = buf[:0]
			}
			// If a single line is huge, hard-split it.
			for len(runes) > telegramMaxLen {
				chunks = append(chunks, string(runes[:telegramMaxLen]))
				runes = runes[telegramMaxLen:]
			}
		}
		buf = append(buf, runes...)
	}
	if len(buf) > 0 {
		chunks = append(chunks, string(buf))
	}
	return chunks
}
