package pipeline

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openclaw/ainews/internal/config"
)

func listingItem(href, title string) string {
	return fmt.Sprintf(`<article><a href=%q><h2>%s</h2></a><p>Short summary text.</p></article>`, href, title)
}

func TestRunEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/s1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>"+
			listingItem("/2026/02/07/alpha-story", "Quantum breakthrough research paper published")+
			"</body></html>")
	})
	mux.HandleFunc("/s2", func(w http.ResponseWriter, r *http.Request) {
		// First item repeats the alpha-story URL under a new headline;
		// second is a fresh URL whose headline opens the same way.
		fmt.Fprint(w, "<html><body>"+
			listingItem("/2026/02/07/alpha-story", "OpenAI releases GPT-5 now shipping")+
			listingItem("/2026/02/07/beta-story", "OpenAI releases GPT-5 to all users")+
			"</body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{
		Sources: []config.Source{
			{Name: "Source One", URL: srv.URL + "/s1", Type: "web"},
			{Name: "Source Two", URL: srv.URL + "/s2", Type: "web"},
		},
		MaxArticles:    15,
		RequestTimeout: 5 * time.Second,
	}

	got := New(cfg).Run()
	if len(got) != 2 {
		t.Fatalf("want 2 articles after dedup, got %d: %+v", len(got), got)
	}
	if got[0].Title != "Quantum breakthrough research paper published" {
		t.Errorf("got[0].Title = %q", got[0].Title)
	}
	if got[1].Title != "OpenAI releases GPT-5 to all users" {
		t.Errorf("got[1].Title = %q", got[1].Title)
	}
	if got[0].Category != "🔬 Research" {
		t.Errorf("got[0].Category = %q", got[0].Category)
	}
	if !strings.Contains(strings.ToLower(got[1].Category), "release") {
		t.Errorf("got[1].Category = %q", got[1].Category)
	}
	for _, a := range got {
		if a.Source == "" {
			t.Errorf("article %q lost its source", a.Title)
		}
	}
}

func TestRunTruncatesToMaxArticles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 6; i++ {
			b.WriteString(listingItem(
				fmt.Sprintf("/2026/02/07/story-number-%d", i),
				fmt.Sprintf("Distinct headline number %d here", i)))
		}
		b.WriteString("</body></html>")
		fmt.Fprint(w, b.String())
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{
		Sources:        []config.Source{{Name: "Bulk", URL: srv.URL + "/list", Type: "web"}},
		MaxArticles:    2,
		RequestTimeout: 5 * time.Second,
	}

	got := New(cfg).Run()
	if len(got) != 2 {
		t.Fatalf("want 2 articles, got %d", len(got))
	}
	if got[0].Title != "Distinct headline number 0 here" {
		t.Errorf("truncation must keep the head of the list, got %q", got[0].Title)
	}
}

func TestRunSurvivesDeadSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>"+
			listingItem("/2026/02/07/lone-story", "The only surviving headline today")+
			"</body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{
		Sources: []config.Source{
			{Name: "Dead", URL: "http://127.0.0.1:1/nope", Type: "web"},
			{Name: "Alive", URL: srv.URL + "/ok", Type: "web"},
		},
		MaxArticles:    15,
		RequestTimeout: 2 * time.Second,
	}

	got := New(cfg).Run()
	if len(got) != 1 {
		t.Fatalf("want 1 article from the live source, got %d", len(got))
	}
	if got[0].Source != "Alive" {
		t.Errorf("source = %q", got[0].Source)
	}
}

func TestRunTodayOnlyDropsUndatable(t *testing.T) {
	mux := http.NewServeMux()
	today := time.Now().Format("2006-01-02")
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<article><a href="/2026/02/07/dated-story"><h2>Dated story from this morning</h2></a>
				<time datetime="`+today+`">today</time></article>
			<article><a href="/2026/02/07/undated-story"><h2>Undated story of unknown age</h2></a></article>
			</body></html>`)
	})
	mux.HandleFunc("/2026/02/07/undated-story", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head></head><body>no date markup</body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{
		Sources:        []config.Source{{Name: "Mixed", URL: srv.URL + "/list", Type: "web"}},
		MaxArticles:    15,
		TodayOnly:      true,
		RequestTimeout: 2 * time.Second,
	}

	got := New(cfg).Run()
	if len(got) != 1 {
		t.Fatalf("want 1 dated article, got %d", len(got))
	}
	if got[0].Title != "Dated story from this morning" {
		t.Errorf("got %q", got[0].Title)
	}
	if got[0].PublishedAt == "" {
		t.Error("surviving article must carry its normalized date")
	}
}
