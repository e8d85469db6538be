package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Sample Feed</title>
    <item>
      <title>  Parliament adopts access to information law  </title>
      <link>https://www.parlament.gv.at/news/123</link>
      <description>&lt;a href="https://example.com"&gt;Parliament adopts&lt;/a&gt; the new law</description>
      <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Undated item</title>
      <link>https://orf.at/stories/456</link>
      <description>No date on this one</description>
    </item>
  </channel>
</rss>`

func TestFetcher_Fetch(t *testing.T) {
	t.Run("parses and normalizes feed items", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprint(w, sampleRSS)
		}))
		defer server.Close()

		f := NewFetcher(server.Client())

		// Act
		items, err := f.Fetch(context.Background(), server.URL)

		// Assert
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}

		first := items[0]
		if first.Title != "Parliament adopts access to information law" {
			t.Errorf("title not trimmed: %q", first.Title)
		}
		if first.Domain != "parlament.gv.at" {
			t.Errorf("domain = %q, want parlament.gv.at", first.Domain)
		}
		if first.Summary != "Parliament adopts the new law" {
			t.Errorf("summary not stripped: %q", first.Summary)
		}
		want := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
		if !first.PublishedAt.Equal(want) {
			t.Errorf("published = %v, want %v", first.PublishedAt, want)
		}

		if !items[1].PublishedAt.IsZero() {
			t.Errorf("expected zero time for undated item, got %v", items[1].PublishedAt)
		}
	})

	t.Run("sends the poster user agent", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			fmt.Fprint(w, sampleRSS)
		}))
		defer server.Close()

		f := NewFetcher(server.Client())
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}

		if gotUA != fetcherUserAgent {
			t.Errorf("User-Agent = %q, want %q", gotUA, fetcherUserAgent)
		}
	})

	t.Run("returns error on not found without retrying", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		f := NewFetcher(server.Client())
		_, err := f.Fetch(context.Background(), server.URL)

		if err == nil {
			t.Fatal("expected error for 404 feed")
		}
		if hits != 1 {
			t.Errorf("expected a single request for non-retryable status, got %d", hits)
		}
	})

	t.Run("open circuit rejects without a request", func(t *testing.T) {
		// Arrange: trip the breaker with enough consecutive failures.
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		f := NewFetcher(server.Client())
		for i := 0; i < 10; i++ {
			if _, err := f.Fetch(context.Background(), server.URL); err == nil {
				t.Fatal("expected error for 404 feed")
			}
		}
		hitsWhenOpen := hits

		// Act
		_, err := f.Fetch(context.Background(), server.URL)

		// Assert
		if !errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("Fetch() error = %v, want gobreaker.ErrOpenState", err)
		}
		if hits != hitsWhenOpen {
			t.Errorf("expected no request while circuit is open, got %d extra", hits-hitsWhenOpen)
		}
	})

	t.Run("returns error on invalid payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "this is not a feed")
		}))
		defer server.Close()

		f := NewFetcher(server.Client())
		if _, err := f.Fetch(context.Background(), server.URL); err == nil {
			t.Fatal("expected parse error for non-feed payload")
		}
	})
}
