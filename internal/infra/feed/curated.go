package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"oryx-daily/internal/usecase/digest"
)

// curatedMaxItems caps the whole curated digest; the curated sources skew
// toward a few prolific feeds, so the cap is global rather than per country.
const curatedMaxItems = 12

// Curated generates a digest from the hand-maintained per-country query
// set. It is the secondary generator: narrower coverage than GoogleNews but
// with queries tuned per country, including local-language terms.
type Curated struct {
	fetcher ItemFetcher
	now     func() time.Time
}

// NewCurated creates the curated-feed generator.
func NewCurated(fetcher ItemFetcher) *Curated {
	return &Curated{fetcher: fetcher, now: time.Now}
}

// Generate implements digest.Generator.
func (c *Curated) Generate(ctx context.Context, countries []string, opts digest.Options) (string, error) {
	cutoff := c.now().UTC().Add(-time.Duration(opts.Hours) * time.Hour)

	remaining := curatedMaxItems
	seen := make(map[string]bool)
	blocks := make([]string, 0, len(countries))

	for _, country := range countries {
		items, err := c.collectFor(ctx, country, cutoff)
		if err != nil {
			return "", fmt.Errorf("collect %s: %w", country, err)
		}

		// Newest first within a country.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PublishedAt.After(items[j].PublishedAt)
		})

		lines := []string{fmt.Sprintf("*%s*", country)}
		for _, it := range items {
			if remaining == 0 {
				break
			}
			key := it.Link
			if key == "" {
				key = it.Title + it.Domain
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, fmt.Sprintf("• %s — <%s|%s>", it.Title, it.Link, it.Domain))
			remaining--
		}

		if len(lines) == 1 {
			blocks = append(blocks, fmt.Sprintf("*%s*\n• No items in the past %dh.\n", country, opts.Hours))
			continue
		}
		blocks = append(blocks, strings.Join(lines, "\n")+"\n")
	}

	header := fmt.Sprintf("Country updates (past %dh)\n", opts.Hours)
	return header + strings.Join(blocks, "\n"), nil
}

// collectFor fetches every curated feed for one country and returns items
// inside the window that mention a governance keyword. Individual feed
// failures are logged and skipped.
func (c *Curated) collectFor(ctx context.Context, country string, cutoff time.Time) ([]Item, error) {
	var out []Item
	for _, feedURL := range curatedURLsFor(country) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := c.fetcher.Fetch(ctx, feedURL)
		if err != nil {
			slog.Warn("curated feed fetch failed, skipping",
				slog.String("country", country),
				slog.Any("error", err))
			continue
		}

		for _, it := range items {
			if it.PublishedAt.IsZero() || it.PublishedAt.Before(cutoff) {
				continue
			}
			if !matchesCuratedKeywords(it) {
				continue
			}
			out = append(out, it)
		}
	}
	return dedupeItems(out), nil
}

// matchesCuratedKeywords reports whether a keyword from the curated set
// appears in the item's title or summary.
func matchesCuratedKeywords(it Item) bool {
	haystack := strings.ToLower(it.Title + " " + it.Summary)
	for _, kw := range curatedKeywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
