package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"oryx-daily/internal/usecase/digest"
)

// collectParallelism caps concurrent country collections within one
// generation call. Channel processing itself stays sequential; this only
// parallelizes the feed fetches behind a single digest.
const collectParallelism = 4

// perCountryCap limits digest items per country to keep messages readable.
const perCountryCap = 4

// ItemFetcher retrieves normalized items from one feed URL.
type ItemFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]Item, error)
}

// GoogleNews is the live digest generator. For each country it runs
// language- and region-targeted Google News searches, prefers verified
// (government, parliament) sources with graceful fallback to reputable
// media, de-duplicates items across the whole run, and renders Slack
// mrkdwn.
type GoogleNews struct {
	fetcher ItemFetcher
	now     func() time.Time
}

// NewGoogleNews creates the live generator on top of a feed fetcher.
func NewGoogleNews(fetcher ItemFetcher) *GoogleNews {
	return &GoogleNews{fetcher: fetcher, now: time.Now}
}

// countryItems is the per-country collection result, kept separate so
// verified-first selection happens at assembly time.
type countryItems struct {
	verified []Item
	media    []Item
}

// Generate implements digest.Generator.
func (g *GoogleNews) Generate(ctx context.Context, countries []string, opts digest.Options) (string, error) {
	cutoff := g.now().UTC().Add(-time.Duration(opts.Hours) * time.Hour)

	collected := make([]countryItems, len(countries))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(collectParallelism)

	for i, country := range countries {
		i, country := i, country
		eg.Go(func() error {
			items, err := g.collectFor(egCtx, country, cutoff)
			if err != nil {
				return fmt.Errorf("collect %s: %w", country, err)
			}
			collected[i] = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	// Assembly is sequential in configuration order so cross-country
	// de-duplication is deterministic.
	globalSeen := make(map[string]bool)
	blocks := make([]string, 0, len(countries))

	for i, country := range countries {
		items := collected[i].verified
		if !(opts.VerifiedOnly && len(items) > 0) {
			items = append(items, collected[i].media...)
		}

		unique := make([]Item, 0, len(items))
		for _, it := range items {
			key := it.Link
			if key == "" {
				key = it.Title + it.Domain
			}
			if globalSeen[key] {
				continue
			}
			globalSeen[key] = true
			unique = append(unique, it)
		}

		blocks = append(blocks, renderCountryBlock(country, unique, opts.Hours))
	}

	header := fmt.Sprintf("Country updates (past %dh)\n", opts.Hours)
	return header + strings.Join(blocks, "\n"), nil
}

// collectFor runs the verified and media searches for one country and
// returns time-filtered, de-duplicated items. A single failing feed is
// logged and skipped; the country degrades instead of failing the channel.
func (g *GoogleNews) collectFor(ctx context.Context, country string, cutoff time.Time) (countryItems, error) {
	conf := confFor(country)
	verifiedQ, mediaQ := buildQueries(country)

	var out countryItems
	for _, q := range []struct {
		query string
		dst   *[]Item
	}{
		{verifiedQ, &out.verified},
		{mediaQ, &out.media},
	} {
		if q.query == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return countryItems{}, err
		}

		feedURL := gnewsURL(q.query, conf.Lang, conf.GL, conf.CEID)
		items, err := g.fetcher.Fetch(ctx, feedURL)
		if err != nil {
			slog.Warn("feed fetch failed, skipping",
				slog.String("country", country),
				slog.Any("error", err))
			continue
		}

		for _, it := range items {
			if it.PublishedAt.IsZero() || it.PublishedAt.Before(cutoff) {
				continue
			}
			*q.dst = append(*q.dst, it)
		}
	}

	out.verified = dedupeItems(out.verified)
	out.media = dedupeItems(out.media)
	return out, nil
}

// renderCountryBlock renders one country's mrkdwn section: up to
// perCountryCap bulleted items with a verified/media badge, or an explicit
// no-items line.
func renderCountryBlock(country string, items []Item, hours int) string {
	if len(items) == 0 {
		return fmt.Sprintf("*%s*\n• No verified items in the past %dh.\n", country, hours)
	}

	conf := confFor(country)
	lines := []string{fmt.Sprintf("*%s*", country)}
	for _, it := range items[:min(len(items), perCountryCap)] {
		badge := "📰"
		for _, site := range conf.VerifiedSites {
			if strings.HasSuffix(it.Domain, site) {
				badge = "✅"
				break
			}
		}
		lines = append(lines, fmt.Sprintf("• %s %s — <%s|%s>", badge, it.Title, it.Link, it.Domain))
	}
	return strings.Join(lines, "\n") + "\n"
}

// dedupeItems removes duplicates by link, falling back to title, keeping
// first occurrence order.
func dedupeItems(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := it.Link
		if key == "" {
			key = it.Title
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
