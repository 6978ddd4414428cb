package extract

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"

	"blogwatch/app/article"
	"blogwatch/app/sources"
)

// sitemaps.org 0.9 urlset
type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// SitemapExtractor reads a source's XML sitemap. <lastmod> is a
// modification time, not a publication time, so its candidates carry
// the lowest dated confidence tier and sitemap entries have no titles;
// the pipeline fetches titles for the few that survive the freshness
// filter.
type SitemapExtractor struct {
	client *Client
}

func NewSitemapExtractor(client *Client) *SitemapExtractor {
	return &SitemapExtractor{client: client}
}

func (e *SitemapExtractor) Name() string {
	return "sitemap"
}

func (e *SitemapExtractor) Extract(ctx context.Context, src sources.Source) ([]Candidate, error) {
	urls, err := e.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(urls))
	for _, u := range urls {
		if u.Loc == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			URL:        u.Loc,
			RawDate:    u.LastMod,
			Confidence: article.ConfidenceSitemap,
		})
	}

	slog.Debug("Sitemap parsed", "source", src.Name, "urls", len(candidates))

	return candidates, nil
}

// Lookup returns lastmod values keyed by normalized URL, used to fill
// date gaps in candidates produced by a stronger strategy.
func (e *SitemapExtractor) Lookup(ctx context.Context, src sources.Source) (map[string]string, error) {
	urls, err := e.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]string, len(urls))
	for _, u := range urls {
		if u.Loc != "" && u.LastMod != "" {
			dates[NormalizeURL(u.Loc)] = u.LastMod
		}
	}
	return dates, nil
}

func (e *SitemapExtractor) fetch(ctx context.Context, src sources.Source) ([]sitemapURL, error) {
	data, err := e.client.Get(ctx, src.SitemapURL, src.GetTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}

	var urlset sitemapURLSet
	if err := xml.Unmarshal(data, &urlset); err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}

	return urlset.URLs, nil
}
