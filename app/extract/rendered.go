package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"blogwatch/app/sources"
)

const renderTimeout = 30 * time.Second

// RenderedExtractor drives a headless browser for sources that build
// their listing client side, then hands the DOM snapshot to the same
// semantic-HTML parsing as the static extractor. The browser lives for
// one extraction only; the render wait is bounded by renderTimeout.
type RenderedExtractor struct {
	html *HTMLExtractor
}

func NewRenderedExtractor(html *HTMLExtractor) *RenderedExtractor {
	return &RenderedExtractor{html: html}
}

func (e *RenderedExtractor) Name() string {
	return "rendered"
}

func (e *RenderedExtractor) Extract(ctx context.Context, src sources.Source) ([]Candidate, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, renderTimeout)
	defer cancel()

	slog.Debug("Rendering page", "source", src.Name, "url", src.PageURL)

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(src.PageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return e.html.parse(ctx, []byte(html), src)
}
