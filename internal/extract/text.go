package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MaxTextLen bounds any extracted display text.
	MaxTextLen = 300
	// MaxSummaryLen bounds article summaries.
	MaxSummaryLen = 200
)

// Truncate cuts s to max runes and marks the cut with an ellipsis.
// Text at or under the limit comes back unchanged.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// text pulls whitespace-normalized text out of a selection, bounded by max.
func text(sel *goquery.Selection, max int) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	t := strings.Join(strings.Fields(sel.Text()), " ")
	return Truncate(t, max)
}
