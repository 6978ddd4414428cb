package article

// Confidence ranks how trustworthy a publish date is, by the strategy
// tier that produced it. Higher values win when two tiers disagree.
type Confidence int

const (
	ConfidenceNone    Confidence = iota
	ConfidenceSitemap            // sitemap <lastmod>: modification time, not publication time
	ConfidenceMeta               // article:published_time meta tag on the detail page
	ConfidencePattern            // date pattern found in page text near the article
	ConfidenceFeed               // published/updated field of a syndication feed
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceSitemap:
		return "sitemap"
	case ConfidenceMeta:
		return "meta"
	case ConfidencePattern:
		return "pattern"
	case ConfidenceFeed:
		return "feed"
	default:
		return "none"
	}
}

// Article is one discovered blog post, normalized for comparison.
// Articles are built fresh on every run and never persisted.
type Article struct {
	Title      string
	URL        string
	Source     string
	Published  Date
	Confidence Confidence
}
