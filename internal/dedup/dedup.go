package dedup

import (
	"strings"

	"github.com/openclaw/ainews/internal/article"
)

const titleKeyRunes = 20

// Deduplicate collapses candidates that share a UID or a near-identical
// title, in one forward pass. Insertion order is preserved and the
// first occurrence always wins. The seen-sets live only for this call:
// there is deliberately no memory across runs.
func Deduplicate(items []article.Article) []article.Article {
	seenUIDs := make(map[string]struct{}, len(items))
	seenTitles := make(map[string]struct{}, len(items))
	unique := make([]article.Article, 0, len(items))

	for _, a := range items {
		uid := a.UID()
		if _, dup := seenUIDs[uid]; dup {
			continue
		}
		key := titleKey(a.Title)
		if _, dup := seenTitles[key]; dup {
			continue
		}
		seenUIDs[uid] = struct{}{}
		seenTitles[key] = struct{}{}
		unique = append(unique, a)
	}

	return unique
}

// titleKey approximates title identity: the same story reported by two
// sources usually shares its first 20 characters.
func titleKey(title string) string {
	r := []rune(title)
	if len(r) > titleKeyRunes {
		r = r[:titleKeyRunes]
	}
	return strings.TrimSpace(strings.ToLower(string(r)))
}
