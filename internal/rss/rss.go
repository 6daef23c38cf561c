// Package rss collects candidates from sources of type "rss", where a
// proper feed saves us from HTML heuristics entirely.
package rss

import (
	"github.com/mmcdole/gofeed"

	"github.com/openclaw/ainews/internal/article"
	"github.com/openclaw/ainews/internal/config"
	"github.com/openclaw/ainews/internal/extract"
	"github.com/openclaw/ainews/internal/logger"
)

const feedItemCap = 20

// FetchFeed parses the source's feed and maps its items to article
// candidates. A broken or unreachable feed yields nil; the run goes on.
func FetchFeed(src config.Source) []article.Article {
	feed, err := gofeed.NewParser().ParseURL(src.URL)
	if err != nil {
		logger.Warn("feed parse failed", "source", src.Name, "error", err)
		return nil
	}

	var out []article.Article
	for _, item := range feed.Items {
		if len(out) >= feedItemCap {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		out = append(out, article.Article{
			Title:         extract.Truncate(item.Title, extract.MaxTextLen),
			URL:           item.Link,
			Summary:       extract.Truncate(item.Description, extract.MaxSummaryLen),
			Source:        src.Name,
			PublishedHint: item.Published,
		})
	}

	logger.Info("feed loaded", "source", src.Name, "items", len(out))
	return out
}
