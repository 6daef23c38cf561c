package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openclaw/ainews/internal/article"
	"github.com/openclaw/ainews/internal/fetch"
	"github.com/openclaw/ainews/internal/logger"
)

const (
	duckduckgoSearchURL = "https://html.duckduckgo.com/html/?q="
	searchResultCap     = 10
	// SearchSourceLabel marks candidates that came from the search
	// fallback rather than a configured source.
	SearchSourceLabel = "Web Search"
)

var uddbRedirectRe = regexp.MustCompile(`uddg=([^&]+)`)

// Search supplements the configured sources with an HTML web search.
// Failures are absorbed: a broken search yields no candidates, never an
// aborted run.
func (e *Extractor) Search(c *fetch.Client, query string) []article.Article {
	doc, err := c.Document(e.SearchEndpoint + url.QueryEscape(query))
	if err != nil {
		logger.Warn("web search failed", "query", query, "error", err)
		return nil
	}

	var out []article.Article
	doc.Find(".result, .web-result").EachWithBreak(func(i int, result *goquery.Selection) bool {
		if i >= searchResultCap {
			return false
		}
		link := result.Find("a.result__a[href]").First()
		if link.Length() == 0 {
			link = result.Find("a[href]").First()
		}
		if link.Length() == 0 {
			return true
		}

		href := unwrapRedirect(link.AttrOr("href", ""))
		title := text(link, MaxTextLen)
		if title == "" || !strings.HasPrefix(href, "http") {
			return true
		}

		out = append(out, article.Article{
			Title:   title,
			URL:     href,
			Summary: text(result.Find(".result__snippet").First(), MaxSummaryLen),
			Source:  SearchSourceLabel,
		})
		return true
	})

	return out
}

// unwrapRedirect decodes the destination out of a search-engine
// redirect wrapper (…?uddg=<escaped url>…). Malformed wrappers fall
// back to the raw href.
func unwrapRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	m := uddbRedirectRe.FindStringSubmatch(href)
	if m == nil {
		return href
	}
	decoded, err := url.QueryUnescape(m[1])
	if err != nil {
		return href
	}
	return decoded
}
