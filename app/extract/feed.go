package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"blogwatch/app/article"
	"blogwatch/app/sources"
)

// FeedExtractor reads a source's syndication feed. Feed dates are the
// most trustworthy publish signal available, so candidates carry feed
// confidence; entries without a date stay dateless for a weaker
// strategy to fill.
type FeedExtractor struct {
	client *Client
	parser *gofeed.Parser
}

func NewFeedExtractor(client *Client) *FeedExtractor {
	return &FeedExtractor{
		client: client,
		parser: gofeed.NewParser(),
	}
}

func (e *FeedExtractor) Name() string {
	return "feed"
}

func (e *FeedExtractor) Extract(ctx context.Context, src sources.Source) ([]Candidate, error) {
	data, err := e.client.Get(ctx, src.FeedURL, src.GetTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := e.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}

		c := Candidate{
			Title: strings.TrimSpace(item.Title),
			URL:   item.Link,
		}

		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published != nil {
			c.Published = article.DateOf(*published)
			c.Confidence = article.ConfidenceFeed
		}

		candidates = append(candidates, c)
	}

	slog.Debug("Feed parsed", "source", src.Name, "entries", len(feed.Items), "candidates", len(candidates))

	return candidates, nil
}
