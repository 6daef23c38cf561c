package extract

import (
	"net/url"
	"strings"
)

// Administrative path segments that never point at a single article.
var skipPathSegments = []string{
	"/category/", "/tag/", "/page/", "/author/",
	"/search", "/login", "/signup", "/about",
	"/contact", "/privacy", "/terms",
}

// isArticleURL filters out listing, navigation and account pages.
// Shallow paths (fewer than two segments) pass only with a trailing
// slash; anything deeper needs a path longer than 5 characters.
func isArticleURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)

	for _, p := range skipPathSegments {
		if strings.Contains(path, p) {
			return false
		}
	}

	segments := 0
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments++
		}
	}
	if segments < 2 {
		return strings.HasSuffix(path, "/")
	}
	return len(path) > 5
}

// resolveURL resolves href against the page it was found on.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return b.ResolveReference(h).String()
}
