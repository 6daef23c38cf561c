package fetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDocument(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<html><body><h1 id="headline">Hello</h1></body></html>`)
	}))
	defer srv.Close()

	doc, err := New().Document(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("#headline").Text(); got != "Hello" {
		t.Errorf("headline = %q", got)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("browser-like User-Agent expected, got %q", gotUA)
	}
}

func TestDocumentRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := New().Document(srv.URL); err == nil {
		t.Fatal("403 must surface as an error")
	} else if !strings.Contains(err.Error(), "status 403") {
		t.Errorf("err = %v", err)
	}
}

func TestDocumentTransportError(t *testing.T) {
	if _, err := New().Document("http://127.0.0.1:1/"); err == nil {
		t.Fatal("unreachable host must surface as an error")
	}
}
