package extract

import (
	"context"

	"blogwatch/app/article"
	"blogwatch/app/sources"
)

// Candidate is a raw extraction result before freshness filtering. The
// publish date may arrive pre-normalized (feed parsers hand over
// structured timestamps), as a raw string scraped off the markup, or
// not at all — a later, weaker strategy may still fill the gap.
type Candidate struct {
	Title      string
	URL        string
	RawDate    string
	Published  article.Date
	Confidence article.Confidence
}

// Extractor produces candidate articles from one entry point of a
// source. Malformed individual entries are skipped, not reported; an
// error return means the entry point itself was unusable (unreachable,
// or unparsable as a whole).
type Extractor interface {
	Name() string
	Extract(ctx context.Context, src sources.Source) ([]Candidate, error)
}
