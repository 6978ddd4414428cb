package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blogwatch/app/article"
	"blogwatch/app/extract"
	"blogwatch/app/sources"
)

// SourceError records one source's total failure. Source failures are
// isolated: they are reported alongside the aggregate result and never
// abort the other sources.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

type sitemapLookup interface {
	Lookup(ctx context.Context, src sources.Source) (map[string]string, error)
}

type pageInfoFetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) (extract.PageInfo, error)
}

// Runner walks each source's strategy chain, normalizes and
// deduplicates what comes back, and keeps only confirmed-fresh
// articles.
type Runner struct {
	extractors map[sources.Strategy]extract.Extractor
	sitemap    sitemapLookup
	meta       pageInfoFetcher
}

func NewRunner(client *extract.Client) *Runner {
	meta := extract.NewPageMeta(client)
	html := extract.NewHTMLExtractor(client, meta)
	sitemap := extract.NewSitemapExtractor(client)

	return &Runner{
		extractors: map[sources.Strategy]extract.Extractor{
			sources.StrategyFeed:     extract.NewFeedExtractor(client),
			sources.StrategyHTML:     html,
			sources.StrategyRendered: extract.NewRenderedExtractor(html),
			sources.StrategySitemap:  sitemap,
		},
		sitemap: sitemap,
		meta:    meta,
	}
}

// Run processes every source independently and concatenates the
// results in configured source order, so the aggregate output is
// deterministic regardless of which source finished first.
func (r *Runner) Run(ctx context.Context, srcs []sources.Source, cutoff article.Date) ([]article.Article, []SourceError) {
	results := make([][]article.Article, len(srcs))
	failures := make([]*SourceError, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			articles, err := r.runSource(ctx, src, cutoff)
			if err != nil {
				slog.Warn("Source failed", "source", src.Name, "error", err)
				failures[i] = &SourceError{Source: src.Name, Err: err}
				return
			}
			results[i] = articles
		}(i, src)
	}
	wg.Wait()

	var all []article.Article
	var errs []SourceError
	for i := range srcs {
		all = append(all, results[i]...)
		if failures[i] != nil {
			errs = append(errs, *failures[i])
		}
	}
	return all, errs
}

func (r *Runner) runSource(ctx context.Context, src sources.Source, cutoff article.Date) ([]article.Article, error) {
	chain := src.Strategies()
	if len(chain) == 0 {
		return nil, fmt.Errorf("no entry points configured")
	}

	// First strategy that yields candidates wins; the rest of the chain
	// is only ever consulted to fill gaps, never to replace results.
	var candidates []extract.Candidate
	var used sources.Strategy
	var lastErr error
	for _, strategy := range chain {
		extractor, ok := r.extractors[strategy]
		if !ok {
			continue
		}

		found, err := extractor.Extract(ctx, src)
		if err != nil {
			slog.Warn("Strategy failed", "source", src.Name, "strategy", string(strategy), "error", err)
			lastErr = err
			continue
		}
		if len(found) == 0 {
			slog.Debug("Strategy yielded nothing, falling through", "source", src.Name, "strategy", string(strategy))
			continue
		}

		candidates = found
		used = strategy
		slog.Debug("Strategy selected", "source", src.Name, "strategy", string(strategy), "candidates", len(found))
		break
	}

	if candidates == nil {
		if lastErr != nil {
			return nil, fmt.Errorf("all strategies exhausted: %w", lastErr)
		}
		slog.Info("No candidates found", "source", src.Name)
		return nil, nil
	}

	candidates = dedupe(candidates)
	normalizeDates(candidates)

	if used != sources.StrategySitemap && src.SitemapURL != "" && anyUndated(candidates) {
		r.fillDatesFromSitemap(ctx, src, candidates)
	}

	return r.collect(ctx, src, candidates, cutoff), nil
}

// dedupe drops repeated URLs, keeping the first occurrence. URLs are
// normalized in place so downstream comparisons stay consistent.
func dedupe(candidates []extract.Candidate) []extract.Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]extract.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := extract.NormalizeURL(c.URL)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		c.URL = key
		out = append(out, c)
	}
	return out
}

func normalizeDates(candidates []extract.Candidate) {
	for i := range candidates {
		c := &candidates[i]
		if !c.Published.IsZero() || c.RawDate == "" {
			continue
		}
		if d, ok := article.NormalizeDate(c.RawDate); ok {
			c.Published = d
			if c.Confidence == article.ConfidenceNone {
				c.Confidence = article.ConfidencePattern
			}
		}
	}
}

func anyUndated(candidates []extract.Candidate) bool {
	for _, c := range candidates {
		if c.Published.IsZero() {
			return true
		}
	}
	return false
}

// fillDatesFromSitemap dates candidates the winning strategy left
// undated using sitemap lastmod values. A lastmod never overrides a
// date a stronger tier already produced.
func (r *Runner) fillDatesFromSitemap(ctx context.Context, src sources.Source, candidates []extract.Candidate) {
	dates, err := r.sitemap.Lookup(ctx, src)
	if err != nil {
		slog.Warn("Sitemap lookup failed", "source", src.Name, "error", err)
		return
	}

	filled := 0
	for i := range candidates {
		c := &candidates[i]
		if !c.Published.IsZero() {
			continue
		}
		raw, ok := dates[c.URL]
		if !ok {
			continue
		}
		if d, ok := article.NormalizeDate(raw); ok {
			c.Published = d
			c.Confidence = article.ConfidenceSitemap
			filled++
		}
	}

	if filled > 0 {
		slog.Debug("Dates filled from sitemap", "source", src.Name, "filled", filled)
	}
}

// collect turns surviving candidates into articles. Titles missing
// after extraction (sitemap entries carry none) are fetched from the
// detail page, but only for candidates already confirmed fresh, so the
// extra requests stay bounded by the notification volume.
func (r *Runner) collect(ctx context.Context, src sources.Source, candidates []extract.Candidate, cutoff article.Date) []article.Article {
	fresh := make([]article.Article, 0, len(candidates))
	for _, c := range candidates {
		if c.Published.IsZero() {
			slog.Debug("Skipping undated candidate", "source", src.Name, "url", c.URL)
			continue
		}
		if c.Published.Before(cutoff) {
			continue
		}

		title := c.Title
		published := c.Published
		confidence := c.Confidence
		if title == "" {
			info, err := r.meta.Fetch(ctx, c.URL, src.GetTimeout())
			if err != nil || info.Title == "" {
				slog.Debug("Skipping candidate without title", "source", src.Name, "url", c.URL)
				continue
			}
			title = info.Title
			if !info.Published.IsZero() && info.Confidence > confidence {
				published = info.Published
				confidence = info.Confidence
			}
		}

		fresh = append(fresh, article.Article{
			Title:      title,
			URL:        c.URL,
			Source:     src.Name,
			Published:  published,
			Confidence: confidence,
		})
	}

	return article.FilterFresh(fresh, cutoff)
}
