package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blogwatch/app/article"
	"blogwatch/app/sources"
)

// HTMLExtractor scans a listing page for structural <article>
// containers and reads titles from headings and dates from nearby text
// patterns. CSS class names change with every site build and are never
// relied on. Candidates missing a title or date after the listing scan
// are completed from their detail page.
type HTMLExtractor struct {
	client *Client
	meta   *PageMeta
}

func NewHTMLExtractor(client *Client, meta *PageMeta) *HTMLExtractor {
	return &HTMLExtractor{client: client, meta: meta}
}

func (e *HTMLExtractor) Name() string {
	return "html"
}

func (e *HTMLExtractor) Extract(ctx context.Context, src sources.Source) ([]Candidate, error) {
	data, err := e.client.Get(ctx, src.PageURL, src.GetTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	return e.parse(ctx, data, src)
}

// parse is shared with the rendered extractor, which hands over a DOM
// snapshot instead of a raw response body.
func (e *HTMLExtractor) parse(ctx context.Context, data []byte, src sources.Source) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	listingURL := NormalizeURL(src.PageURL)

	anchors := doc.Find("article a[href]")
	if anchors.Length() == 0 {
		// Some listings skip <article> entirely; fall back to scanning
		// every anchor and let the article path filter do the work.
		anchors = doc.Find("a[href]")
	}

	var candidates []Candidate
	seen := make(map[string]bool)

	anchors.Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if src.ArticlePath != "" && !strings.Contains(href, src.ArticlePath) {
			return
		}

		full := NormalizeURL(resolveURL(src.BaseURL, href))
		if full == "" || full == listingURL || seen[full] {
			return
		}
		seen[full] = true

		title := strings.TrimSpace(link.Find("h1, h2, h3, h4").First().Text())

		published, ok := article.FindDate(link.Text())
		if !ok {
			if container := link.Closest("article"); container.Length() > 0 {
				published, _ = article.FindDate(container.Text())
			}
		}

		c := Candidate{
			Title:     title,
			URL:       full,
			Published: published,
		}
		if !published.IsZero() {
			c.Confidence = article.ConfidencePattern
		}

		if c.Title == "" || c.Published.IsZero() {
			e.fillFromDetailPage(ctx, &c, src)
		}

		if c.Title == "" {
			slog.Debug("Skipping candidate without title", "source", src.Name, "url", c.URL)
			return
		}

		candidates = append(candidates, c)
	})

	slog.Debug("Listing page parsed", "source", src.Name, "candidates", len(candidates))

	return candidates, nil
}

func (e *HTMLExtractor) fillFromDetailPage(ctx context.Context, c *Candidate, src sources.Source) {
	info, err := e.meta.Fetch(ctx, c.URL, src.GetTimeout())
	if err != nil {
		slog.Debug("Could not fetch detail page", "source", src.Name, "url", c.URL, "error", err)
		return
	}

	if c.Title == "" {
		c.Title = info.Title
	}
	if c.Published.IsZero() && !info.Published.IsZero() {
		c.Published = info.Published
		c.Confidence = info.Confidence
	}
}
