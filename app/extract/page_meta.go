package extract

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"blogwatch/app/article"
)

// PageMeta pulls the title and publish date off a single article page.
// It leans on markup that is SEO-critical and therefore survives site
// redesigns: og:title and friends for the title, article:published_time
// and a "Published <date>" text pattern for the date. CSS class names
// are build artifacts and are never consulted.
type PageMeta struct {
	client *Client
}

func NewPageMeta(client *Client) *PageMeta {
	return &PageMeta{client: client}
}

// PageInfo is what a detail page yields.
type PageInfo struct {
	Title      string
	Published  article.Date
	Confidence article.Confidence
}

var publishedRe = regexp.MustCompile(`(?i)Published\s*((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4})`)

func (m *PageMeta) Fetch(ctx context.Context, pageURL string, timeout time.Duration) (PageInfo, error) {
	data, err := m.client.Get(ctx, pageURL, timeout)
	if err != nil {
		return PageInfo{}, fmt.Errorf("failed to fetch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return PageInfo{}, fmt.Errorf("failed to parse page: %w", err)
	}

	info := PageInfo{Title: pageTitle(doc, data)}

	if content, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		if d, ok := article.NormalizeDate(content); ok {
			info.Published = d
			info.Confidence = article.ConfidenceMeta
		}
	}

	if info.Published.IsZero() {
		if match := publishedRe.FindStringSubmatch(doc.Text()); match != nil {
			if d, ok := article.NormalizeDate(match[1]); ok {
				info.Published = d
				info.Confidence = article.ConfidencePattern
			}
		}
	}

	return info, nil
}

func pageTitle(doc *goquery.Document, data []byte) string {
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t, ok := doc.Find(`meta[name="twitter:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return stripTitleSuffix(t)
	}

	// Last resort: readability usually recovers a title even from pages
	// with none of the expected markup.
	if a, err := readability.FromReader(bytes.NewReader(data), nil); err == nil && a.Title != "" {
		return strings.TrimSpace(a.Title)
	}

	return ""
}

// stripTitleSuffix removes common " | Site Name" style suffixes from a
// <title> tag.
func stripTitleSuffix(title string) string {
	for _, sep := range []string{" | ", " \\ ", " - ", " – "} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return title
}
