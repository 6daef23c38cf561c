package article

import (
	"crypto/md5"
	"encoding/hex"
)

// Article is one aggregated news item as it moves through the pipeline.
type Article struct {
	Title   string
	URL     string
	Summary string
	Source  string

	// Category stays empty until the classification stage sets it.
	Category string

	// PublishedAt holds the normalized RFC3339 timestamp once the date
	// normalizer succeeds; PublishedHint keeps the raw string found on
	// the page (a time[datetime] attribute, feed date, etc).
	PublishedAt   string
	PublishedHint string

	// Tags is reserved for future use and not populated by current logic.
	Tags []string
}

// UID is the dedup identity: first 12 hex chars of md5 over the URL.
// It is always derived on demand so it can never drift from URL.
func (a Article) UID() string {
	sum := md5.Sum([]byte(a.URL))
	return hex.EncodeToString(sum[:])[:12]
}
