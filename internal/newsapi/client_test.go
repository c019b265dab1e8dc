package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTopHeadlines(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-headlines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "ok",
			"totalResults": 1,
			"articles": []map[string]any{
				{
					"source":      map[string]any{"id": "bbc-news", "name": "BBC News"},
					"title":       "Title",
					"description": "Desc",
					"url":         "https://example.com/a",
					"urlToImage":  "https://example.com/a.png",
					"publishedAt": "2026-08-28T07:00:00Z",
					"content":     "Content",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	got, err := c.TopHeadlines(context.Background(), "bbc-news,cnn", 2, 10)
	if err != nil {
		t.Fatalf("TopHeadlines error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d articles, want 1", len(got))
	}
	a := got[0]
	if a.Title != "Title" || a.Source.Name != "BBC News" || a.URLToImage != "https://example.com/a.png" {
		t.Errorf("unexpected article %+v", a)
	}
	want := map[string]string{
		"apiKey":   "test-key",
		"sources":  "bbc-news,cnn",
		"page":     "2",
		"pageSize": "10",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestTopHeadlinesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if _, err := c.TopHeadlines(context.Background(), "bbc-news", 1, 10); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	c := NewClient("  ", "k")
	if c.baseURL != "https://newsapi.org/v2" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
	c = NewClient("https://example.com/v2/", "k")
	if c.baseURL != "https://example.com/v2" {
		t.Errorf("trailing slash not trimmed: %q", c.baseURL)
	}
}
