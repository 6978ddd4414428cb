package sources

import "time"

// Source describes one monitored blog: its name and the entry points
// available for extraction. Not every source has every entry point;
// the strategy chain is derived from what is configured.
type Source struct {
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	PageURL     string `yaml:"page_url"`
	FeedURL     string `yaml:"feed_url"`
	SitemapURL  string `yaml:"sitemap_url"`
	ArticlePath string `yaml:"article_path"` // href substring identifying article links on the listing page
	Render      bool   `yaml:"render"`       // listing is built client side, needs a headless browser
	Enabled     bool   `yaml:"enabled"`
	Timeout     int    `yaml:"timeout"` // seconds, per request
}

// GetTimeout returns the per-request timeout as time.Duration.
func (s *Source) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

// Strategy identifies one extraction approach.
type Strategy string

const (
	StrategyFeed     Strategy = "feed"
	StrategyHTML     Strategy = "html"
	StrategyRendered Strategy = "rendered"
	StrategySitemap  Strategy = "sitemap"
)

// Strategies returns the extractor chain for the source in descending
// stability order: the syndication feed first, then the listing page
// (through a headless browser when the site renders client side), then
// the sitemap as a weak last resort.
func (s *Source) Strategies() []Strategy {
	var chain []Strategy
	if s.FeedURL != "" {
		chain = append(chain, StrategyFeed)
	}
	if s.PageURL != "" {
		if s.Render {
			chain = append(chain, StrategyRendered)
		} else {
			chain = append(chain, StrategyHTML)
		}
	}
	if s.SitemapURL != "" {
		chain = append(chain, StrategySitemap)
	}
	return chain
}
