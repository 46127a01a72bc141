package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMDNFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("locale"); got != "en-US" {
			t.Errorf("locale = %q, want en-US", got)
		}
		fmt.Fprint(w, `{"documents":[
			{"title":"Array.prototype.map()","summary":"Creates a new array.","slug":"Web/JavaScript/Reference/Global_Objects/Array/map"},
			{"title":"Array","summary":"The Array object.","slug":"Web/JavaScript/Reference/Global_Objects/Array"}
		]}`)
	}))
	defer srv.Close()

	m := NewMDN(srv.URL, time.Second)
	pages, err := m.Fetch(context.Background(), "array map")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	wantURL := srv.URL + "/en-US/docs/Web/JavaScript/Reference/Global_Objects/Array/map"
	if pages[0].URL != wantURL {
		t.Errorf("slug not resolved: url = %q, want %q", pages[0].URL, wantURL)
	}
	if pages[0].Title != "Array.prototype.map()" || pages[0].Summary != "Creates a new array." {
		t.Errorf("unexpected first page: %+v", pages[0])
	}
}

func TestMDNFetchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"documents":[]}`)
	}))
	defer srv.Close()

	m := NewMDN(srv.URL, time.Second)
	pages, err := m.Fetch(context.Background(), "xyzzy")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected single sentinel item, got %d", len(pages))
	}
	if pages[0].Message != "No results found for this topic on MDN" {
		t.Errorf("sentinel message = %q", pages[0].Message)
	}
}

func TestMDNFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := NewMDN(srv.URL, time.Second)
	if _, err := m.Fetch(context.Background(), "anything"); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}
