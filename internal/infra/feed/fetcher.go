// Package feed implements the project-supplied digest generators: a live
// Google News generator with per-country language and region targeting, and
// a simpler curated-feed generator. Both produce Slack mrkdwn bodies.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"oryx-daily/internal/resilience/circuitbreaker"
	"oryx-daily/internal/resilience/retry"
)

const fetcherUserAgent = "OryxDaily/1.0"

// Item is one normalized feed entry.
type Item struct {
	Title       string
	Link        string
	Summary     string
	Domain      string
	PublishedAt time.Time
}

// Fetcher retrieves and parses RSS/Atom feeds with retry and circuit breaker
// protection. A single Fetcher is shared by all generation calls; it is safe
// for concurrent use.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFetcher creates a Fetcher with the given HTTP client.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses the feed at feedURL, returning normalized items.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	// Skip the retry machinery entirely while the breaker is open; every
	// attempt would be rejected anyway.
	if f.circuitBreaker.IsOpen() {
		return nil, gobreaker.ErrOpenState
	}

	var items []Item

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		items = cbResult.([]Item)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *Fetcher) doFetch(ctx context.Context, feedURL string) ([]Item, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = fetcherUserAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var gfErr gofeed.HTTPError
		if errors.As(err, &gfErr) {
			// Map to the retry package's error type so the status-based
			// retry policy applies.
			return nil, &retry.HTTPError{StatusCode: gfErr.StatusCode, Message: gfErr.Status}
		}
		return nil, err
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		var pubAt time.Time
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pubAt = *it.UpdatedParsed
		}

		summary := it.Description
		if summary == "" {
			summary = it.Content
		}

		items = append(items, Item{
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Summary:     stripHTML(summary),
			Domain:      domainOf(it.Link),
			PublishedAt: pubAt.UTC(),
		})
	}

	return items, nil
}
