package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/openclaw/ainews/internal/article"
)

const (
	genericArticleCap = 20
	genericHeadingCap = 30
	// Pass 2 only runs when pass 1 found fewer than this many candidates.
	genericMinCandidates = 3
	minTitleRunes        = 5
)

// StrategyFunc extracts candidate articles from a parsed listing page.
// Candidates are unvalidated: dedup and date filtering happen later.
type StrategyFunc func(doc *goquery.Document, baseURL, sourceName string) []article.Article

// Extractor dispatches each source to a hand-tuned strategy when its URL
// matches a known domain, and to the generic two-pass strategy otherwise.
type Extractor struct {
	strategies map[string]StrategyFunc

	// SearchEndpoint is the HTML search URL prefix the query gets
	// appended to. Overridable for tests.
	SearchEndpoint string
}

func New() *Extractor {
	return &Extractor{
		strategies: map[string]StrategyFunc{
			"jiqizhixin": extractJiqizhixin,
			"qbitai":     extractQbitai,
		},
		SearchEndpoint: duckduckgoSearchURL,
	}
}

// Resolve picks the strategy for a source URL. Called once when the
// source list is loaded, not per fetch.
func (e *Extractor) Resolve(sourceURL string) StrategyFunc {
	for domain, fn := range e.strategies {
		if strings.Contains(sourceURL, domain) {
			return fn
		}
	}
	return extractGeneric
}

// extractGeneric is the two-pass fallback for sources without a
// hand-tuned strategy.
func extractGeneric(doc *goquery.Document, baseURL, sourceName string) []article.Article {
	var out []article.Article
	seen := make(map[string]struct{})

	// Pass 1: semantic <article> containers.
	doc.Find("article").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= genericArticleCap {
			return false
		}
		link := el.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		href := resolveURL(baseURL, link.AttrOr("href", ""))
		if _, dup := seen[href]; dup || !isArticleURL(href) {
			return true
		}
		seen[href] = struct{}{}

		title := text(el.Find("h1, h2, h3, h4").First(), MaxTextLen)
		if title == "" {
			title = text(link, MaxTextLen)
		}
		if utf8.RuneCountInString(title) < minTitleRunes {
			return true
		}

		summary := text(el.Find("p").First(), MaxSummaryLen)
		hint := el.Find("time").First().AttrOr("datetime", "")

		out = append(out, article.Article{
			Title:         title,
			URL:           href,
			Summary:       summary,
			Source:        sourceName,
			PublishedHint: hint,
		})
		return true
	})

	if len(out) >= genericMinCandidates {
		return out
	}

	// Pass 2: headings wrapping a link, for pages without <article> markup.
	doc.Find("h2, h3").EachWithBreak(func(i int, heading *goquery.Selection) bool {
		if i >= genericHeadingCap {
			return false
		}
		link := heading.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		href := resolveURL(baseURL, link.AttrOr("href", ""))
		if _, dup := seen[href]; dup || !isArticleURL(href) {
			return true
		}
		seen[href] = struct{}{}

		title := text(heading, MaxTextLen)
		if utf8.RuneCountInString(title) < minTitleRunes {
			return true
		}

		summary := text(heading.NextAllFiltered("p").First(), MaxSummaryLen)

		out = append(out, article.Article{
			Title:   title,
			URL:     href,
			Summary: summary,
			Source:  sourceName,
		})
		return true
	})

	return out
}
