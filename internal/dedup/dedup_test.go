package dedup

import (
	"strings"
	"testing"

	"github.com/openclaw/ainews/internal/article"
)

func TestDeduplicateByURL(t *testing.T) {
	in := []article.Article{
		{Title: "First report of the launch", URL: "https://a.example/story"},
		{Title: "Completely different headline", URL: "https://a.example/story"},
		{Title: "Unrelated second story here", URL: "https://b.example/other"},
	}
	got := Deduplicate(in)
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].Title != "First report of the launch" {
		t.Errorf("first occurrence must win, got %q", got[0].Title)
	}
	if got[1].URL != "https://b.example/other" {
		t.Errorf("order must be preserved, got %q", got[1].URL)
	}
}

func TestDeduplicateByTitlePrefix(t *testing.T) {
	// Same first 20 runes, different case and URLs: one survivor.
	in := []article.Article{
		{Title: "OpenAI Releases GPT-5 to all users", URL: "https://a.example/1"},
		{Title: "openai releases gpt-5 now shipping", URL: "https://b.example/2"},
		{Title: "OpenAI Releases", URL: "https://c.example/3"},
	}
	got := Deduplicate(in)
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].URL != "https://a.example/1" || got[1].URL != "https://c.example/3" {
		t.Errorf("got %q and %q", got[0].URL, got[1].URL)
	}
}

func TestDeduplicateDroppedItemLeavesNoTrace(t *testing.T) {
	// The second item is a URL duplicate; its title key must not be
	// registered, so the third item survives.
	in := []article.Article{
		{Title: "Quantum breakthrough research paper published", URL: "https://x.example/alpha"},
		{Title: "OpenAI releases GPT-5 now shipping", URL: "https://x.example/alpha"},
		{Title: "OpenAI releases GPT-5 to all users", URL: "https://y.example/beta"},
	}
	got := Deduplicate(in)
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[1].URL != "https://y.example/beta" {
		t.Errorf("third item must survive, got %q", got[1].URL)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	in := []article.Article{
		{Title: "Story one about robots in factories", URL: "https://a.example/1"},
		{Title: "Story two about chips and foundries", URL: "https://a.example/2"},
	}
	once := Deduplicate(in)
	twice := Deduplicate(once)
	if len(once) != 2 || len(twice) != 2 {
		t.Fatalf("idempotence broken: %d then %d", len(once), len(twice))
	}
}

func TestTitleKey(t *testing.T) {
	if got := titleKey("ABCDEFGHIJKLMNOPQRSTUVWXYZ"); got != "abcdefghijklmnopqrst" {
		t.Errorf("got %q", got)
	}
	// CJK titles cut on runes, not bytes.
	long := strings.Repeat("新", 25)
	if got := titleKey(long); got != strings.Repeat("新", 20) {
		t.Errorf("got %d runes", len([]rune(got)))
	}
	if got := titleKey("short"); got != "short" {
		t.Errorf("got %q", got)
	}
}
