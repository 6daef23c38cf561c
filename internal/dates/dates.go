// Package dates normalizes the free-text publish dates found on news
// pages and enriches articles that carry none.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/openclaw/ainews/internal/article"
	"github.com/openclaw/ainews/internal/fetch"
	"github.com/openclaw/ainews/internal/logger"
)

// Zoned ISO-8601 first, then zoneless variants interpreted as local time.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	numericDateRe = regexp.MustCompile(`(20\d{2})[./-](\d{1,2})[./-](\d{1,2})`)
	chineseDateRe = regexp.MustCompile(`(20\d{2})年(\d{1,2})月(\d{1,2})日`)
)

// Metadata keys carrying a publish timestamp, in lookup priority order.
var publishedMetaKeys = []string{
	"article:published_time",
	"og:published_time",
	"publish_date",
	"pubdate",
	"date",
	"datePublished",
	"article:modified_time",
}

// Parse interprets a free-text date string. It tries ISO-8601 (a literal
// trailing Z is rewritten to an explicit zero offset first), then
// numeric year-month-day with . / - separators, then the Chinese
// YYYY年MM月DD日 form. A miss is (zero, false), never an error.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	candidate := raw
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}
	if t, err := time.Parse(time.RFC3339, candidate); err == nil {
		return t, true
	}
	for _, layout := range isoLayouts[1:] {
		if t, err := time.ParseInLocation(layout, candidate, time.Local); err == nil {
			return t, true
		}
	}

	if m := numericDateRe.FindStringSubmatch(raw); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}
	if m := chineseDateRe.FindStringSubmatch(raw); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}

	return time.Time{}, false
}

func dateFromParts(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.Local), true
}

// ExtractPublished scans a parsed article page for a publish timestamp:
// known meta tags in priority order, then a <time> element's
// machine-readable attribute or text.
func ExtractPublished(doc *goquery.Document) string {
	for _, key := range publishedMetaKeys {
		sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key))
		if content := strings.TrimSpace(sel.First().AttrOr("content", "")); content != "" {
			return content
		}
	}

	timeEl := doc.Find("time").First()
	if timeEl.Length() > 0 {
		if v := timeEl.AttrOr("datetime", ""); v != "" {
			return v
		}
		if v := timeEl.AttrOr("content", ""); v != "" {
			return v
		}
		if v := strings.TrimSpace(timeEl.Text()); v != "" {
			return v
		}
	}

	return ""
}

// Enrich resolves an article's publish time. The raw hint from
// extraction is tried first; when it fails the article's own page is
// re-fetched and scanned. On success PublishedAt is set to the
// normalized value; on failure it stays empty.
func Enrich(c *fetch.Client, a *article.Article) (time.Time, bool) {
	t, ok := Parse(a.PublishedHint)
	if !ok {
		doc, err := c.Document(a.URL)
		if err != nil {
			logger.Debug("publish date fetch failed", "url", a.URL, "error", err)
			return time.Time{}, false
		}
		t, ok = Parse(ExtractPublished(doc))
	}
	if !ok {
		return time.Time{}, false
	}
	a.PublishedAt = t.Format(time.RFC3339)
	return t, true
}

// IsToday reports whether t falls on the current local calendar date.
// Zoned timestamps are converted to local time before comparing.
func IsToday(t time.Time) bool {
	y1, m1, d1 := t.In(time.Local).Date()
	y2, m2, d2 := time.Now().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
