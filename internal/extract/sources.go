package extract

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/openclaw/ainews/internal/article"
)

const (
	sourceItemCap       = 15
	sourceMinTitleRunes = 5 // titles of 4 runes or fewer are noise
)

// extractJiqizhixin is tuned for the 机器之心 front page list markup.
func extractJiqizhixin(doc *goquery.Document, baseURL, sourceName string) []article.Article {
	return extractItemList(doc, baseURL, sourceName,
		".article-item, .article_item, .list-item",
		"h2, h3, h4, .title",
		"p, .summary, .desc")
}

// extractQbitai is tuned for the 量子位 post list markup.
func extractQbitai(doc *goquery.Document, baseURL, sourceName string) []article.Article {
	return extractItemList(doc, baseURL, sourceName,
		"article, .post-item, .news-item",
		"h2, h3, h4",
		"p")
}

// extractItemList scans item containers for a link, a heading-like title
// and a paragraph-like summary. Shared shape of both hand-tuned sources.
func extractItemList(doc *goquery.Document, baseURL, sourceName, itemSel, titleSel, summarySel string) []article.Article {
	var out []article.Article

	doc.Find(itemSel).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if i >= sourceItemCap {
			return false
		}
		link := item.Find("a[href]").First()
		if link.Length() == 0 {
			return true
		}
		href := resolveURL(baseURL, link.AttrOr("href", ""))

		title := text(item.Find(titleSel).First(), MaxTextLen)
		if title == "" {
			title = text(link, MaxTextLen)
		}
		if utf8.RuneCountInString(title) < sourceMinTitleRunes {
			return true
		}

		out = append(out, article.Article{
			Title:   title,
			URL:     href,
			Summary: text(item.Find(summarySel).First(), MaxSummaryLen),
			Source:  sourceName,
		})
		return true
	})

	return out
}
